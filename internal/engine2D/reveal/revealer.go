// Package reveal drives scroll-triggered entrance animations. Each watched
// element is classified against a start line and an end line in the viewport;
// crossings fire toggle actions that play or reverse a short eased tween.
package reveal

import (
	"math"

	"ambient-portfolio/internal/engine2D/clock"
)

const (
	DefaultStart    = 0.8 // element top at 80% of viewport height
	DefaultEnd      = 0.2 // element bottom at 20% of viewport height
	DefaultDuration = 1.5
	DefaultDistance = 100.0
)

type State int

const (
	OffScreenBelow State = iota
	Entering
	Visible
	Exiting
	OffScreenAbove
)

func (s State) String() string {
	switch s {
	case OffScreenBelow:
		return "offscreen-below"
	case Entering:
		return "entering"
	case Visible:
		return "visible"
	case Exiting:
		return "exiting"
	case OffScreenAbove:
		return "offscreen-above"
	}
	return "unknown"
}

type zone int

const (
	zoneBefore zone = iota // not yet reached the start line
	zoneActive
	zoneAfter // scrolled past the end line
)

type Transition int

const (
	Enter Transition = iota
	Leave
	EnterBack
	LeaveBack
)

func (t Transition) String() string {
	return [...]string{"enter", "leave", "enter-back", "leave-back"}[t]
}

// Config describes one watched element. Zero fields take the revealer's
// defaults.
type Config struct {
	ID       string
	Top      float64 // document-space top edge in pixels
	Height   float64
	Start    float64
	End      float64
	Duration float64
	Delay    float64
	Distance float64
	Actions  *ToggleActions
}

type Trigger struct {
	cfg     Config
	actions ToggleActions

	zone      zone
	progress  float64
	direction int
	resumeDir int
	delay     float64
	plays     int
	scroll    float64
}

func (t *Trigger) ID() string              { return t.cfg.ID }
func (t *Trigger) Progress() float64       { return t.progress }
func (t *Trigger) Plays() int              { return t.plays }
func (t *Trigger) ScrollProgress() float64 { return t.scroll }

// Eased returns power3.out of the tween progress.
func (t *Trigger) Eased() float64 {
	return EaseOutCubic(t.progress)
}

func (t *Trigger) Opacity() float64 {
	return t.Eased()
}

// TranslateY is the remaining downward offset of the element in pixels.
func (t *Trigger) TranslateY() float64 {
	return (1 - t.Eased()) * t.cfg.Distance
}

func (t *Trigger) State() State {
	switch {
	case t.direction > 0:
		return Entering
	case t.direction < 0:
		return Exiting
	}
	if t.zone == zoneAfter {
		return OffScreenAbove
	}
	if t.progress >= 1 {
		return Visible
	}
	return OffScreenBelow
}

func EaseOutCubic(p float64) float64 {
	p = clamp01(p)
	inv := 1 - p
	return 1 - inv*inv*inv
}

type TransitionListener func(id string, tr Transition)

type Revealer struct {
	defaults       Config
	actions        ToggleActions
	instant        bool
	viewportHeight float64
	offset         float64

	triggers  []*Trigger
	byID      map[string]*Trigger
	listeners []TransitionListener
	release   func()
}

type Options struct {
	Start    float64
	End      float64
	Duration float64
	Distance float64
	Actions  ToggleActions
	// Instant completes tweens in one step, for the reduced-animation preference.
	Instant bool
}

func New(c *clock.FrameClock, viewportHeight float64, opts Options) *Revealer {
	if opts.Start == 0 {
		opts.Start = DefaultStart
	}
	if opts.End == 0 {
		opts.End = DefaultEnd
	}
	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}
	if opts.Distance == 0 {
		opts.Distance = DefaultDistance
	}
	if opts.Actions == (ToggleActions{}) {
		opts.Actions = DefaultToggleActions
	}
	r := &Revealer{
		defaults: Config{
			Start:    opts.Start,
			End:      opts.End,
			Duration: opts.Duration,
			Distance: opts.Distance,
		},
		actions:        opts.Actions,
		instant:        opts.Instant,
		viewportHeight: viewportHeight,
		byID:           make(map[string]*Trigger),
	}
	if c != nil {
		r.release = c.Subscribe(func(t clock.Tick) { r.Step(t.Delta) })
	}
	return r
}

// Watch starts tracking an element, or updates its geometry if the id is
// already watched. The element is evaluated against the current offset
// immediately.
func (r *Revealer) Watch(cfg Config) *Trigger {
	if cfg.Start == 0 {
		cfg.Start = r.defaults.Start
	}
	if cfg.End == 0 {
		cfg.End = r.defaults.End
	}
	if cfg.Duration <= 0 {
		cfg.Duration = r.defaults.Duration
	}
	if cfg.Distance == 0 {
		cfg.Distance = r.defaults.Distance
	}
	actions := r.actions
	if cfg.Actions != nil {
		actions = *cfg.Actions
	}

	if t, ok := r.byID[cfg.ID]; ok {
		t.cfg = cfg
		t.actions = actions
		r.evaluate(t)
		return t
	}

	t := &Trigger{cfg: cfg, actions: actions, zone: zoneBefore}
	r.triggers = append(r.triggers, t)
	r.byID[cfg.ID] = t
	r.evaluate(t)
	return t
}

func (r *Revealer) Unwatch(id string) {
	t, ok := r.byID[id]
	if !ok {
		return
	}
	delete(r.byID, id)
	for i, other := range r.triggers {
		if other == t {
			r.triggers = append(r.triggers[:i:i], r.triggers[i+1:]...)
			break
		}
	}
}

func (r *Revealer) Get(id string) *Trigger {
	return r.byID[id]
}

func (r *Revealer) Len() int {
	return len(r.triggers)
}

func (r *Revealer) OnTransition(fn TransitionListener) {
	r.listeners = append(r.listeners, fn)
}

// SetOffset re-evaluates every trigger for a new scroll offset. Calling it
// again with the same offset fires nothing.
func (r *Revealer) SetOffset(offset float64) {
	r.offset = offset
	for _, t := range r.triggers {
		r.evaluate(t)
	}
}

func (r *Revealer) SetViewportHeight(h float64) {
	r.viewportHeight = h
	r.SetOffset(r.offset)
}

func (r *Revealer) SetInstant(instant bool) {
	r.instant = instant
}

// Step advances every running tween by dt seconds.
func (r *Revealer) Step(dt float64) {
	for _, t := range r.triggers {
		r.advance(t, dt)
	}
}

func (r *Revealer) Close() {
	if r.release != nil {
		r.release()
		r.release = nil
	}
}

func (r *Revealer) classify(t *Trigger) zone {
	screenTop := t.cfg.Top - r.offset
	startLine := t.cfg.Start * r.viewportHeight
	endLine := t.cfg.End * r.viewportHeight

	span := startLine - endLine + t.cfg.Height
	if span > 0 {
		t.scroll = clamp01((startLine - screenTop) / span)
	}

	switch {
	case screenTop > startLine:
		return zoneBefore
	case screenTop+t.cfg.Height < endLine:
		return zoneAfter
	}
	return zoneActive
}

func (r *Revealer) evaluate(t *Trigger) {
	next := r.classify(t)
	prev := t.zone
	if next == prev {
		return
	}
	t.zone = next

	switch {
	case prev == zoneBefore && next == zoneActive:
		r.fire(t, Enter)
	case prev == zoneActive && next == zoneAfter:
		r.fire(t, Leave)
	case prev == zoneAfter && next == zoneActive:
		r.fire(t, EnterBack)
	case prev == zoneActive && next == zoneBefore:
		r.fire(t, LeaveBack)
	case prev == zoneBefore && next == zoneAfter:
		r.fire(t, Enter)
		r.fire(t, Leave)
	case prev == zoneAfter && next == zoneBefore:
		r.fire(t, EnterBack)
		r.fire(t, LeaveBack)
	}
}

func (r *Revealer) fire(t *Trigger, tr Transition) {
	var a Action
	switch tr {
	case Enter:
		a = t.actions.OnEnter
	case Leave:
		a = t.actions.OnLeave
	case EnterBack:
		a = t.actions.OnEnterBack
	case LeaveBack:
		a = t.actions.OnLeaveBack
	}
	r.apply(t, a)
	for _, fn := range r.listeners {
		fn(t.cfg.ID, tr)
	}
}

func (r *Revealer) apply(t *Trigger, a Action) {
	switch a {
	case ActionPlay:
		if t.direction <= 0 && t.progress < 1 {
			if t.progress == 0 {
				t.delay = t.cfg.Delay
			}
			t.plays++
			t.direction = 1
		}
	case ActionReverse:
		// A play still waiting out its delay is cancelled outright.
		if t.progress > 0 {
			t.direction = -1
		} else {
			t.direction = 0
		}
		t.delay = 0
	case ActionPause:
		if t.direction != 0 {
			t.resumeDir = t.direction
		}
		t.direction = 0
	case ActionResume:
		if t.direction == 0 && t.resumeDir != 0 {
			t.direction = t.resumeDir
		}
	case ActionRestart:
		t.progress = 0
		t.delay = t.cfg.Delay
		t.direction = 1
		t.plays++
	case ActionReset:
		t.progress = 0
		t.direction = 0
		t.delay = 0
	case ActionComplete:
		t.progress = 1
		t.direction = 0
		t.delay = 0
	}
	if r.instant && t.direction != 0 {
		r.finish(t)
	}
}

func (r *Revealer) advance(t *Trigger, dt float64) {
	if t.direction == 0 || dt <= 0 {
		return
	}
	if r.instant {
		r.finish(t)
		return
	}
	if t.direction > 0 && t.delay > 0 {
		if dt <= t.delay {
			t.delay -= dt
			return
		}
		dt -= t.delay
		t.delay = 0
	}
	t.progress += float64(t.direction) * dt / t.cfg.Duration
	if t.progress >= 1 || t.progress <= 0 {
		r.finish(t)
	}
}

func (r *Revealer) finish(t *Trigger) {
	if t.direction > 0 {
		t.progress = 1
	} else if t.direction < 0 {
		t.progress = 0
	}
	t.direction = 0
	t.delay = 0
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
