// Package router maps paths to the views the window can show and keeps a
// back stack.
package router

import (
	"strings"
)

type Route int

const (
	Home Route = iota
	Gallery
	Contact
)

func (r Route) String() string {
	switch r {
	case Gallery:
		return "gallery"
	case Contact:
		return "contact"
	}
	return "home"
}

// Path is the canonical path of the route.
func (r Route) Path() string {
	switch r {
	case Gallery:
		return "/gallery"
	case Contact:
		return "/contact"
	}
	return "/"
}

var routes = map[string]Route{
	"/":        Home,
	"/gallery": Gallery,
	"/blender": Gallery,
	"/contact": Contact,
}

// Resolve maps a path to its route. Unknown paths resolve to Home.
func Resolve(path string) Route {
	p := strings.ToLower(strings.TrimSpace(path))
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	if p == "" {
		p = "/"
	}
	if r, ok := routes[p]; ok {
		return r
	}
	return Home
}

type ChangeFunc func(from, to Route)

type Router struct {
	history   []Route
	listeners []ChangeFunc
}

func New(initial string) *Router {
	return &Router{history: []Route{Resolve(initial)}}
}

func (r *Router) Current() Route {
	return r.history[len(r.history)-1]
}

func (r *Router) OnChange(fn ChangeFunc) {
	r.listeners = append(r.listeners, fn)
}

// Navigate pushes the route for path. Navigating to the current route is a
// no-op.
func (r *Router) Navigate(path string) Route {
	return r.Go(Resolve(path))
}

func (r *Router) Go(to Route) Route {
	from := r.Current()
	if to == from {
		return from
	}
	r.history = append(r.history, to)
	r.notify(from, to)
	return to
}

// Back pops one entry. It reports false when already at the first entry.
func (r *Router) Back() bool {
	if len(r.history) < 2 {
		return false
	}
	from := r.Current()
	r.history = r.history[:len(r.history)-1]
	r.notify(from, r.Current())
	return true
}

func (r *Router) Depth() int {
	return len(r.history)
}

func (r *Router) notify(from, to Route) {
	for _, fn := range r.listeners {
		fn(from, to)
	}
}
