// Package layout holds the retained element tree each view builds per frame.
// It stands in for a document tree: hit testing finds the element under the
// pointer and the cursor follower walks its ancestor chain.
package layout

type Role int

const (
	RoleNone Role = iota
	RoleRoot
	RoleSection
	RoleText
	RoleButton
	RoleLink
	RoleTextInput
	RoleBusy
	RoleImage
)

func (r Role) String() string {
	switch r {
	case RoleRoot:
		return "root"
	case RoleSection:
		return "section"
	case RoleText:
		return "text"
	case RoleButton:
		return "button"
	case RoleLink:
		return "link"
	case RoleTextInput:
		return "textinput"
	case RoleBusy:
		return "busy"
	case RoleImage:
		return "image"
	}
	return "none"
}

type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

type Element struct {
	ID       string
	Role     Role
	Classes  []string
	Bounds   Rect
	Href     string
	Disabled bool

	Parent   *Element
	Children []*Element
}

func NewRoot(width, height float64) *Element {
	return &Element{ID: "root", Role: RoleRoot, Bounds: Rect{W: width, H: height}}
}

// Add attaches child and returns it so trees can be built inline.
func (e *Element) Add(child *Element) *Element {
	child.Parent = e
	e.Children = append(e.Children, child)
	return child
}

func (e *Element) HasClass(class string) bool {
	for _, c := range e.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// Ancestors returns e followed by its parents up to the root.
func (e *Element) Ancestors() []*Element {
	var chain []*Element
	for el := e; el != nil; el = el.Parent {
		chain = append(chain, el)
	}
	return chain
}

// HitTest returns the deepest element containing the point. Later children
// are drawn above earlier ones and win ties.
func (e *Element) HitTest(x, y float64) *Element {
	if e == nil || !e.Bounds.Contains(x, y) {
		return nil
	}
	for i := len(e.Children) - 1; i >= 0; i-- {
		if hit := e.Children[i].HitTest(x, y); hit != nil {
			return hit
		}
	}
	return e
}

func (e *Element) Find(id string) *Element {
	if e == nil {
		return nil
	}
	if e.ID == id {
		return e
	}
	for _, c := range e.Children {
		if found := c.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// Walk visits e and its descendants depth first.
func (e *Element) Walk(fn func(*Element)) {
	if e == nil {
		return
	}
	fn(e)
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// Closest returns the nearest element in the ancestor chain with the role.
func (e *Element) Closest(role Role) *Element {
	for el := e; el != nil; el = el.Parent {
		if el.Role == role {
			return el
		}
	}
	return nil
}
