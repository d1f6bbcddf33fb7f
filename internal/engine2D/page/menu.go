package page

import (
	"strconv"
	"strings"

	"ambient-portfolio/internal/content"
	"ambient-portfolio/internal/engine2D/layout"
)

const (
	menuButton = 56.0
	menuItemH  = 40.0
	menuItemW  = 180.0
)

// Host carries out floating menu actions.
type Host interface {
	ScrollTop()
	OpenLink(url string)
	Notice(text string)
	Navigate(path string)
}

// Menu is the floating action button in the bottom right corner. It opens
// a short list of actions stacked above it.
type Menu struct {
	actions []content.Action
	open    bool
}

func NewMenu(actions []content.Action) *Menu {
	return &Menu{actions: actions}
}

func (m *Menu) SetActions(actions []content.Action) {
	m.actions = actions
	m.open = false
}

func (m *Menu) Open() bool { return m.open }
func (m *Menu) Toggle()    { m.open = !m.open }
func (m *Menu) Close()     { m.open = false }

// Activate runs the i-th action and closes the menu.
func (m *Menu) Activate(i int, host Host) bool {
	if i < 0 || i >= len(m.actions) {
		return false
	}
	a := m.actions[i]
	m.open = false
	switch a.Kind {
	case content.ActionScrollTop:
		host.ScrollTop()
	case content.ActionLink:
		host.OpenLink(a.Target)
	case content.ActionNotice:
		host.Notice(a.Target)
	case content.ActionRoute:
		host.Navigate(a.Target)
	default:
		return false
	}
	return true
}

// Layout returns the screen-space blocks and element tree of the menu.
func (m *Menu) Layout(width, height float64, meas Measurer) *Page {
	b := newBuilder(meas, width, height)
	x := width - Margin - menuButton
	y := height - Margin - menuButton
	r := layout.Rect{X: x, Y: y, W: menuButton, H: menuButton}
	label := "+"
	if m.open {
		label = "×"
	}
	el := b.element("menu:toggle", layout.RoleButton, r)
	b.add(Block{Kind: KindButton, Lines: []string{label}, Size: HeadingSize * 0.75, Bounds: r, Element: el, Accent: true})

	if m.open {
		iy := y - Gap/2
		for i := len(m.actions) - 1; i >= 0; i-- {
			iy -= menuItemH
			ir := layout.Rect{X: width - Margin - menuItemW, Y: iy, W: menuItemW, H: menuItemH}
			role := layout.RoleButton
			if m.actions[i].Kind == content.ActionLink {
				role = layout.RoleLink
			}
			el := b.element(MenuItemID(i), role, ir)
			el.Href = m.actions[i].Target
			b.add(Block{Kind: KindButton, Lines: []string{m.actions[i].Label}, Size: SmallSize, Bounds: ir, Element: el})
			iy -= Gap / 3
		}
	}
	p := b.page
	p.Height = height
	p.Root.Bounds.H = height
	return p
}

func MenuItemID(i int) string {
	return menuItemPrefix + strconv.Itoa(i)
}

const menuItemPrefix = "menu:item:"

// ParseMenuItemID is the inverse of MenuItemID.
func ParseMenuItemID(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, menuItemPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	return n, err == nil && n >= 0
}
