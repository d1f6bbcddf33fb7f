// Package cursor draws nothing itself: it tracks the pointer, keeps a fading
// trail, classifies what is under the pointer and eases a dot and a ring
// toward it with damped springs. The engine renders the resulting State.
package cursor

import (
	"math"

	"ambient-portfolio/internal/engine2D/clock"
	"ambient-portfolio/internal/engine2D/input"
	"ambient-portfolio/internal/utils"

	"github.com/charmbracelet/harmonica"
)

// springTune converts a stiffness/damping/mass triple into harmonica terms.
type springTune struct {
	Stiffness, Damping, Mass float64
}

func (s springTune) frequency() float64 {
	return math.Sqrt(s.Stiffness / s.Mass)
}

func (s springTune) ratio() float64 {
	return s.Damping / (2 * math.Sqrt(s.Stiffness*s.Mass))
}

var (
	DotSpring  = springTune{Stiffness: 500, Damping: 28, Mass: 0.3}
	RingSpring = springTune{Stiffness: 300, Damping: 25, Mass: 0.2}
)

// axis is one sprung scalar.
type axis struct {
	pos, vel float64
}

type spring struct {
	tune   springTune
	dt     float64
	spring harmonica.Spring
}

func (s *spring) step(a *axis, target, dt float64) {
	if dt != s.dt {
		s.dt = dt
		s.spring = harmonica.NewSpring(dt, s.tune.frequency(), s.tune.ratio())
	}
	a.pos, a.vel = s.spring.Update(a.pos, a.vel, target)
}

type Options struct {
	TrailCapacity int
	Predicates    []Predicate
}

// State is what the renderer needs for one frame.
type State struct {
	Visible     bool
	Context     Context
	Variant     Variant
	Clicking    bool
	DotX, DotY  float64
	DotScale    float64
	RingX       float64
	RingY       float64
	RingRadius  float64
	RingScale   float64
	RingOpacity float64
	Trail       []Sample
}

type Follower struct {
	clock      *clock.FrameClock
	dispatcher *input.Dispatcher
	opts       Options

	modality Modality
	releases []func()

	trail    *Trail
	ctx      Context
	clicking bool
	seen     bool
	targetX  float64
	targetY  float64

	dotSpring, ringSpring   spring
	dotX, dotY, dotScale    axis
	ringX, ringY, ringScale axis
	ringRadius, ringAlpha   axis
}

// New detects the input modality and, unless the host is touch-only, attaches
// to the clock and the pointer events.
func New(c *clock.FrameClock, d *input.Dispatcher, signals Signals, opts Options) *Follower {
	if opts.Predicates == nil {
		opts.Predicates = DefaultPredicates
	}
	f := &Follower{
		clock:      c,
		dispatcher: d,
		opts:       opts,
		trail:      NewTrail(opts.TrailCapacity),
		dotSpring:  spring{tune: DotSpring},
		ringSpring: spring{tune: RingSpring},
	}
	def := VariantFor(ContextDefault)
	f.dotScale.pos = def.DotScale
	f.ringScale.pos = 1
	f.ringRadius.pos = def.RingRadius
	f.ringAlpha.pos = def.RingOpacity

	f.modality = DetectModality(signals)
	if f.modality == ModalityPointer {
		f.attach()
	}
	return f
}

func (f *Follower) attach() {
	if len(f.releases) > 0 {
		return
	}
	if f.clock != nil {
		f.releases = append(f.releases, f.clock.Subscribe(func(t clock.Tick) { f.Step(t.Delta) }))
	}
	if f.dispatcher != nil {
		f.releases = append(f.releases,
			f.dispatcher.On(input.PointerMove, f.onMove),
			f.dispatcher.On(input.PointerOver, f.onOver),
			f.dispatcher.On(input.PointerDown, func(input.Event) { f.clicking = true }),
			f.dispatcher.On(input.PointerUp, func(input.Event) { f.clicking = false }),
		)
	}
}

func (f *Follower) detach() {
	for _, release := range f.releases {
		release()
	}
	f.releases = nil
	f.trail.Reset()
	f.clicking = false
	f.seen = false
}

// Refresh re-runs modality detection, e.g. after a resize, and attaches or
// detaches accordingly.
func (f *Follower) Refresh(signals Signals) {
	m := DetectModality(signals)
	if m == f.modality {
		return
	}
	utils.Debug("Cursor follower modality %s -> %s", f.modality, m)
	f.modality = m
	if m == ModalityTouchOnly {
		f.detach()
	} else {
		f.attach()
	}
}

func (f *Follower) Close() {
	f.detach()
}

func (f *Follower) Modality() Modality { return f.modality }

func (f *Follower) Enabled() bool { return f.modality == ModalityPointer }

func (f *Follower) Trail() *Trail { return f.trail }

func (f *Follower) Context() Context { return f.ctx }

func (f *Follower) onMove(ev input.Event) {
	f.trail.Push(Sample{X: ev.X, Y: ev.Y, At: ev.At})
	f.targetX, f.targetY = ev.X, ev.Y
	if !f.seen {
		f.seen = true
		f.dotX.pos, f.dotY.pos = ev.X, ev.Y
		f.ringX.pos, f.ringY.pos = ev.X, ev.Y
	}
}

func (f *Follower) onOver(ev input.Event) {
	f.ctx = Classify(ev.Target, f.opts.Predicates)
}

// Step advances the springs by dt seconds.
func (f *Follower) Step(dt float64) {
	if dt <= 0 || !f.Enabled() {
		return
	}
	v := VariantFor(f.ctx)

	dotScale := v.DotScale
	ringScale := 1.0
	if f.clicking {
		dotScale = ClickDotScale
		ringScale = ClickRingScale
	}

	f.dotSpring.step(&f.dotX, f.targetX, dt)
	f.dotSpring.step(&f.dotY, f.targetY, dt)
	f.dotSpring.step(&f.dotScale, dotScale, dt)

	f.ringSpring.step(&f.ringX, f.targetX, dt)
	f.ringSpring.step(&f.ringY, f.targetY, dt)
	f.ringSpring.step(&f.ringScale, ringScale, dt)
	f.ringSpring.step(&f.ringRadius, v.RingRadius, dt)
	f.ringSpring.step(&f.ringAlpha, v.RingOpacity, dt)
}

func (f *Follower) State() State {
	if !f.Enabled() || !f.seen {
		return State{}
	}
	return State{
		Visible:     true,
		Context:     f.ctx,
		Variant:     VariantFor(f.ctx),
		Clicking:    f.clicking,
		DotX:        f.dotX.pos,
		DotY:        f.dotY.pos,
		DotScale:    f.dotScale.pos,
		RingX:       f.ringX.pos,
		RingY:       f.ringY.pos,
		RingRadius:  f.ringRadius.pos,
		RingScale:   f.ringScale.pos,
		RingOpacity: math.Max(0, math.Min(1, f.ringAlpha.pos)),
		Trail:       f.trail.Samples(),
	}
}
