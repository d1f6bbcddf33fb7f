package cursor

import "ambient-portfolio/internal/engine2D/layout"

type Context int

const (
	ContextDefault Context = iota
	ContextInteractive
	ContextText
	ContextBusy
)

func (c Context) String() string {
	switch c {
	case ContextInteractive:
		return "interactive"
	case ContextText:
		return "text"
	case ContextBusy:
		return "busy"
	}
	return "default"
}

// Predicate matches a single element. Classification tests each predicate
// against the whole ancestor chain before moving to the next one.
type Predicate struct {
	Context Context
	Match   func(*layout.Element) bool
}

// DefaultPredicates lists interaction contexts in priority order.
var DefaultPredicates = []Predicate{
	{Context: ContextInteractive, Match: isInteractive},
	{Context: ContextText, Match: isTextInput},
	{Context: ContextBusy, Match: isBusy},
}

func isInteractive(el *layout.Element) bool {
	if el.Disabled {
		return false
	}
	return el.Role == layout.RoleButton || el.Role == layout.RoleLink || el.HasClass("cursor-pointer")
}

func isTextInput(el *layout.Element) bool {
	return el.Role == layout.RoleTextInput && !el.Disabled
}

func isBusy(el *layout.Element) bool {
	return el.Role == layout.RoleBusy || el.HasClass("cursor-wait")
}

// Classify returns the context of the first predicate that matches target or
// any of its ancestors.
func Classify(target *layout.Element, predicates []Predicate) Context {
	if target == nil {
		return ContextDefault
	}
	chain := target.Ancestors()
	for _, p := range predicates {
		for _, el := range chain {
			if p.Match(el) {
				return p.Context
			}
		}
	}
	return ContextDefault
}
