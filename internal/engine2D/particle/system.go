// Package particle simulates the ambient point field behind the content:
// about a hundred drifting points joined by proximity edges and pushed around
// by the pointer. It has no rendering dependency; the engine draws the Frame
// each step produces.
package particle

import (
	"math/rand"
	"time"

	"ambient-portfolio/internal/engine2D/clock"
)

type Field struct {
	cfg    Config
	points []*Point

	pointer       Vec3
	pointerActive bool

	frame     *Frame
	positions []Vec3
	release   func()
}

// New seeds a field. The reduced-animation preference halves the point count
// and turns the pointer ripple off.
func New(cfg Config) *Field {
	cfg = cfg.withDefaults()
	count := cfg.Count
	if cfg.Reduced {
		count = max(count/2, 1)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	return newField(cfg, seedPoints(rng, count, cfg.Extent, cfg.MaxSpeed))
}

// NewFromPoints builds a field around caller-supplied points.
func NewFromPoints(cfg Config, points []Point) *Field {
	cfg = cfg.withDefaults()
	ps := make([]*Point, len(points))
	for i := range points {
		p := points[i]
		p.Index = i
		p.Position = p.Origin
		ps[i] = &p
	}
	return newField(cfg, ps)
}

func newField(cfg Config, points []*Point) *Field {
	return &Field{
		cfg:       cfg,
		points:    points,
		positions: make([]Vec3, len(points)),
		frame:     &Frame{},
	}
}

// Attach steps the field on every clock tick until the returned func is called.
func (f *Field) Attach(c *clock.FrameClock) func() {
	if f.release != nil {
		f.release()
	}
	release := c.Subscribe(func(t clock.Tick) { f.Step(t.Elapsed) })
	f.release = release
	return f.Close
}

func (f *Field) Close() {
	if f.release != nil {
		f.release()
		f.release = nil
	}
}

// SetPointer takes the pointer in normalized device coordinates: x and y in
// [-1, 1] with +y up. Until it is first called the pointer has no influence.
func (f *Field) SetPointer(nx, ny float64) {
	w, h := f.cfg.Camera.VisibleSize(f.cfg.Aspect)
	f.pointer = Vec3{X: nx * w / 2, Y: ny * h / 2}
	f.pointerActive = true
}

// SetPointerWorld places the pointer directly in field coordinates.
func (f *Field) SetPointerWorld(p Vec3) {
	f.pointer = p
	f.pointerActive = true
}

func (f *Field) ClearPointer() {
	f.pointerActive = false
}

func (f *Field) SetAspect(aspect float64) {
	if aspect > 0 {
		f.cfg.Aspect = aspect
	}
}

func (f *Field) Camera() Camera { return f.cfg.Camera }

func (f *Field) Config() Config { return f.cfg }

func (f *Field) Len() int { return len(f.points) }

// Point returns a copy of the i-th point's current state.
func (f *Field) Point(i int) Point {
	return *f.points[i]
}

// Frame returns the buffers built by the most recent Step.
func (f *Field) Frame() *Frame {
	return f.frame
}

// Step recomputes every point, every edge and every buffer for elapsed time t.
func (f *Field) Step(t float64) *Frame {
	n := len(f.points)
	frame := &Frame{
		Elapsed:   t,
		Positions: make([]float32, 0, n*3),
		Colors:    make([]float32, 0, n*3),
	}

	for i, p := range f.points {
		pos := restPosition(p, t)

		influence := 0.0
		if f.pointerActive {
			var disp Vec3
			disp, influence = pointerDisplacement(pos, f.pointer, f.cfg.Radius, f.cfg.Ripple, t)
			if !f.cfg.Reduced {
				pos = pos.Add(disp)
			}
		}

		pos = wrap(p, pos, f.cfg.WrapBound, t)
		p.Position = pos
		f.positions[i] = pos

		speed := p.Velocity.Len()
		c := pointColor(speed, influence, t, p.Index)
		frame.Positions = appendVec(frame.Positions, pos)
		frame.Colors = appendColor(frame.Colors, c)

		if influence > GlowInfluence || speed > GlowSpeed {
			frame.GlowPositions = appendVec(frame.GlowPositions, pos)
			frame.GlowColors = appendColor(frame.GlowColors, glowColor(c))
		}
	}

	frame.Edges = connect(f.positions, f.cfg.Threshold, t)
	frame.EdgePositions = make([]float32, 0, len(frame.Edges)*6)
	frame.EdgeColors = make([]float32, 0, len(frame.Edges)*6)
	for _, e := range frame.Edges {
		c := edgeColor(e.Opacity, e.Pulse)
		frame.EdgePositions = appendVec(frame.EdgePositions, f.positions[e.A])
		frame.EdgePositions = appendVec(frame.EdgePositions, f.positions[e.B])
		frame.EdgeColors = appendColor(frame.EdgeColors, c)
		frame.EdgeColors = appendColor(frame.EdgeColors, c)
	}

	f.frame = frame
	return frame
}
