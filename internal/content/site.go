// Package content describes the panels the engine lays out: the home page
// sections, the gallery artworks, the floating actions and the contact
// links. The description is YAML, with a default compiled into the binary.
package content

import (
	"fmt"
	"strings"
)

type Site struct {
	Title    string         `yaml:"title"`
	Hero     Hero           `yaml:"hero"`
	About    About          `yaml:"about"`
	Skills   []SkillGroup   `yaml:"skills"`
	Projects []Project      `yaml:"projects"`
	Gallery  []Artwork      `yaml:"gallery"`
	Contact  Contact        `yaml:"contact"`
	Actions  []Action       `yaml:"actions"`
	Loading  LoadingScreen  `yaml:"loading"`
	Critical []string       `yaml:"critical_images"`
	Sections []SectionStyle `yaml:"sections"`
}

type Hero struct {
	Title    string   `yaml:"title"`
	Subtitle string   `yaml:"subtitle"`
	Roles    []string `yaml:"roles"`
}

type About struct {
	Paragraphs []string  `yaml:"paragraphs"`
	Features   []Feature `yaml:"features"`
}

type Feature struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type SkillGroup struct {
	Category string  `yaml:"category"`
	Skills   []Skill `yaml:"skills"`
}

type Skill struct {
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
}

type Project struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Tech        []string `yaml:"tech"`
	GitHub      string   `yaml:"github"`
	Demo        string   `yaml:"demo,omitempty"`
}

type Artwork struct {
	ID          int      `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Category    string   `yaml:"category"`
	Year        string   `yaml:"year"`
	Images      []string `yaml:"images"`
	Tags        []string `yaml:"tags"`
	Software    []string `yaml:"software"`
	Duration    string   `yaml:"duration,omitempty"`
	Complexity  string   `yaml:"complexity"`
	RenderTime  string   `yaml:"render_time,omitempty"`
	PolyCount   string   `yaml:"poly_count,omitempty"`
}

type Contact struct {
	Heading string          `yaml:"heading"`
	Methods []ContactMethod `yaml:"methods"`
}

type ContactMethod struct {
	Title string `yaml:"title"`
	Value string `yaml:"value"`
	Link  string `yaml:"link"`
}

type ActionKind string

const (
	ActionScrollTop ActionKind = "scroll-top"
	ActionLink      ActionKind = "link"
	ActionNotice    ActionKind = "notice"
	ActionRoute     ActionKind = "route"
)

// Action is one entry of the floating action menu.
type Action struct {
	Label  string     `yaml:"label"`
	Kind   ActionKind `yaml:"kind"`
	Target string     `yaml:"target,omitempty"`
}

type LoadingScreen struct {
	Messages []string `yaml:"messages"`
}

// SectionStyle overrides reveal timing for one home page section.
type SectionStyle struct {
	ID            string  `yaml:"id"`
	Start         float64 `yaml:"start,omitempty"`
	End           float64 `yaml:"end,omitempty"`
	Duration      float64 `yaml:"duration,omitempty"`
	Stagger       float64 `yaml:"stagger,omitempty"`
	ToggleActions string  `yaml:"toggle_actions,omitempty"`
}

// Categories returns the distinct gallery categories in first-seen order.
func (s *Site) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, a := range s.Gallery {
		if a.Category == "" || seen[a.Category] {
			continue
		}
		seen[a.Category] = true
		out = append(out, a.Category)
	}
	return out
}

func (s *Site) SectionStyle(id string) (SectionStyle, bool) {
	for _, st := range s.Sections {
		if st.ID == id {
			return st, true
		}
	}
	return SectionStyle{}, false
}

// Validate rejects descriptions the views cannot lay out.
func (s *Site) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("site title is empty")
	}
	ids := make(map[int]bool)
	for i, a := range s.Gallery {
		if a.Title == "" {
			return fmt.Errorf("gallery[%d]: title is empty", i)
		}
		if ids[a.ID] {
			return fmt.Errorf("gallery[%d]: duplicate id %d", i, a.ID)
		}
		ids[a.ID] = true
	}
	for i, a := range s.Actions {
		switch a.Kind {
		case ActionScrollTop:
		case ActionLink, ActionNotice, ActionRoute:
			if a.Target == "" {
				return fmt.Errorf("actions[%d] %q: %s needs a target", i, a.Label, a.Kind)
			}
		default:
			return fmt.Errorf("actions[%d] %q: unknown kind %q", i, a.Label, a.Kind)
		}
	}
	for i, sk := range s.Skills {
		for _, item := range sk.Skills {
			if item.Level < 0 || item.Level > 100 {
				return fmt.Errorf("skills[%d] %s: level %d out of range", i, item.Name, item.Level)
			}
		}
	}
	return nil
}
