package reveal

import (
	"fmt"
	"strings"
)

type Action int

const (
	ActionNone Action = iota
	ActionPlay
	ActionReverse
	ActionPause
	ActionResume
	ActionRestart
	ActionReset
	ActionComplete
)

var actionNames = map[string]Action{
	"none":     ActionNone,
	"play":     ActionPlay,
	"reverse":  ActionReverse,
	"pause":    ActionPause,
	"resume":   ActionResume,
	"restart":  ActionRestart,
	"reset":    ActionReset,
	"complete": ActionComplete,
}

func (a Action) String() string {
	for name, v := range actionNames {
		if v == a {
			return name
		}
	}
	return "unknown"
}

// ToggleActions maps each zone crossing to an animation action.
type ToggleActions struct {
	OnEnter     Action
	OnLeave     Action
	OnEnterBack Action
	OnLeaveBack Action
}

// DefaultToggleActions plays on the way in and reverses when the element is
// scrolled back below the start line.
var DefaultToggleActions = ToggleActions{
	OnEnter:     ActionPlay,
	OnLeave:     ActionNone,
	OnEnterBack: ActionNone,
	OnLeaveBack: ActionReverse,
}

// ParseToggleActions reads the four-word form "play none none reverse".
func ParseToggleActions(s string) (ToggleActions, error) {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) != 4 {
		return ToggleActions{}, fmt.Errorf("toggle actions %q: want 4 words, got %d", s, len(fields))
	}
	var out [4]Action
	for i, f := range fields {
		a, ok := actionNames[f]
		if !ok {
			return ToggleActions{}, fmt.Errorf("toggle actions %q: unknown action %q", s, f)
		}
		out[i] = a
	}
	return ToggleActions{OnEnter: out[0], OnLeave: out[1], OnEnterBack: out[2], OnLeaveBack: out[3]}, nil
}

func (t ToggleActions) String() string {
	return fmt.Sprintf("%s %s %s %s", t.OnEnter, t.OnLeave, t.OnEnterBack, t.OnLeaveBack)
}
