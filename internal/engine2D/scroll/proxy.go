// Package scroll implements the smooth-scroll proxy: input moves a target
// offset and the visible offset eases toward it once per frame.
package scroll

import (
	"math"

	"ambient-portfolio/internal/engine2D/clock"
	"ambient-portfolio/internal/engine2D/input"
)

const (
	DefaultRate            = 0.1
	DefaultEpsilon         = 1.0
	DefaultWheelMultiplier = 1.0
	DefaultKeyStep         = 40.0
	referenceFPS           = 60.0
)

// Viewport receives the eased offset. Content layout reads it back when it
// positions sections for the frame.
type Viewport interface {
	SetScrollOffset(offset float64)
}

type Options struct {
	Rate            float64 // fraction of the remaining distance covered per 60 Hz frame
	Epsilon         float64 // snap distance in pixels
	WheelMultiplier float64
	KeyStep         float64
	PageHeight      float64
	Max             float64
}

func (o Options) withDefaults() Options {
	if o.Rate <= 0 {
		o.Rate = DefaultRate
	}
	if o.Rate > 1 {
		o.Rate = 1
	}
	if o.Epsilon <= 0 {
		o.Epsilon = DefaultEpsilon
	}
	if o.WheelMultiplier == 0 {
		o.WheelMultiplier = DefaultWheelMultiplier
	}
	if o.KeyStep <= 0 {
		o.KeyStep = DefaultKeyStep
	}
	if o.Max < 0 {
		o.Max = 0
	}
	return o
}

// Update is passed to scroll listeners whenever the offset changes.
type Update struct {
	Offset    float64
	Target    float64
	Velocity  float64 // pixels per second
	Direction int     // +1 down, -1 up, 0 at rest
}

type Listener func(Update)

type scrollListener struct {
	fn       Listener
	released bool
}

type Proxy struct {
	opts     Options
	viewport Viewport

	offset    float64
	target    float64
	velocity  float64
	direction int
	keysLock  bool

	listeners []*scrollListener
	releases  []func()
	closed    bool
}

// New attaches a proxy to the clock and the input dispatcher. Either may be
// nil, in which case the caller drives Step and ScrollBy directly.
func New(c *clock.FrameClock, d *input.Dispatcher, viewport Viewport, opts Options) *Proxy {
	p := &Proxy{
		opts:     opts.withDefaults(),
		viewport: viewport,
	}
	if c != nil {
		p.releases = append(p.releases, c.Subscribe(func(t clock.Tick) { p.Step(t.Delta) }))
	}
	if d != nil {
		p.releases = append(p.releases,
			d.On(input.Wheel, p.onWheel),
			d.On(input.KeyPress, p.onKey),
		)
	}
	return p
}

// Factor returns the share of the remaining distance covered in dt seconds.
// It equals rate for one 60 Hz frame and stays within (0, 1] for any dt > 0.
func Factor(rate, dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	if rate >= 1 {
		return 1
	}
	return 1 - math.Pow(1-rate, dt*referenceFPS)
}

// Step eases the offset toward the target by dt seconds.
func (p *Proxy) Step(dt float64) {
	if p.closed || p.offset == p.target {
		if p.velocity != 0 || p.direction != 0 {
			p.velocity, p.direction = 0, 0
		}
		return
	}

	prev := p.offset
	diff := p.target - p.offset
	next := p.target
	if math.Abs(diff) >= p.opts.Epsilon {
		next = p.offset + diff*Factor(p.opts.Rate, dt)
		if math.Abs(p.target-next) < p.opts.Epsilon {
			next = p.target
		}
	}
	if next == prev {
		return
	}

	p.offset = next
	if dt > 0 {
		p.velocity = (next - prev) / dt
	}
	p.direction = sign(next - prev)
	p.apply()
}

func (p *Proxy) apply() {
	if p.viewport != nil {
		p.viewport.SetScrollOffset(p.offset)
	}
	u := Update{Offset: p.offset, Target: p.target, Velocity: p.velocity, Direction: p.direction}
	snapshot := make([]*scrollListener, len(p.listeners))
	copy(snapshot, p.listeners)
	for _, l := range snapshot {
		if !l.released {
			l.fn(u)
		}
	}
}

// OnScroll registers fn for every offset change.
func (p *Proxy) OnScroll(fn Listener) func() {
	l := &scrollListener{fn: fn}
	p.listeners = append(p.listeners, l)
	return func() {
		if l.released {
			return
		}
		l.released = true
		for i, other := range p.listeners {
			if other == l {
				p.listeners = append(p.listeners[:i:i], p.listeners[i+1:]...)
				break
			}
		}
	}
}

func (p *Proxy) onWheel(ev input.Event) {
	p.ScrollBy(ev.Delta * p.opts.WheelMultiplier)
}

func (p *Proxy) onKey(ev input.Event) {
	if p.keysLock {
		return
	}
	page := p.opts.PageHeight * 0.9
	if page <= 0 {
		page = p.opts.KeyStep * 10
	}
	switch ev.Key {
	case input.KeyDown:
		p.ScrollBy(p.opts.KeyStep)
	case input.KeyUp:
		p.ScrollBy(-p.opts.KeyStep)
	case input.KeyPageDown:
		p.ScrollBy(page)
	case input.KeyPageUp:
		p.ScrollBy(-page)
	case input.KeySpace:
		if ev.Shift {
			p.ScrollBy(-page)
		} else {
			p.ScrollBy(page)
		}
	case input.KeyHome:
		p.ScrollTo(0)
	case input.KeyEnd:
		p.ScrollTo(p.opts.Max)
	}
}

// ScrollTo moves the target; the offset follows on later ticks.
func (p *Proxy) ScrollTo(target float64) {
	p.target = p.clamp(target)
}

func (p *Proxy) ScrollBy(delta float64) {
	p.ScrollTo(p.target + delta)
}

// Jump moves offset and target together without easing.
func (p *Proxy) Jump(offset float64) {
	offset = p.clamp(offset)
	p.target = offset
	if p.offset == offset {
		return
	}
	p.offset = offset
	p.velocity, p.direction = 0, 0
	p.apply()
}

// SetMax updates the scrollable extent, e.g. after a resize or content reload.
func (p *Proxy) SetMax(max float64) {
	if max < 0 {
		max = 0
	}
	p.opts.Max = max
	p.target = p.clamp(p.target)
	if p.offset > max {
		p.Jump(max)
	}
}

func (p *Proxy) SetPageHeight(h float64) {
	p.opts.PageHeight = h
}

// SetRate switches easing; a rate of 1 disables smoothing.
func (p *Proxy) SetRate(rate float64) {
	if rate <= 0 {
		rate = DefaultRate
	}
	if rate > 1 {
		rate = 1
	}
	p.opts.Rate = rate
}

// LockKeys stops keyboard scrolling while a text field has focus.
func (p *Proxy) LockKeys(lock bool) {
	p.keysLock = lock
}

func (p *Proxy) Offset() float64   { return p.offset }
func (p *Proxy) Target() float64   { return p.target }
func (p *Proxy) Max() float64      { return p.opts.Max }
func (p *Proxy) Velocity() float64 { return p.velocity }
func (p *Proxy) Direction() int    { return p.direction }
func (p *Proxy) Settled() bool     { return p.offset == p.target }

// Close releases the clock subscription and input listeners.
func (p *Proxy) Close() {
	if p.closed {
		return
	}
	p.closed = true
	for _, release := range p.releases {
		release()
	}
	p.releases = nil
	p.listeners = nil
}

func (p *Proxy) clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > p.opts.Max {
		return p.opts.Max
	}
	return v
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
