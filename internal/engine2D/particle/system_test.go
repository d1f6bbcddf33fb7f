package particle

import (
	"math"
	"testing"
	"time"

	"ambient-portfolio/internal/engine2D/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// equalDepthTime is a moment where the depth wave of index 0 and index 1 agree.
var equalDepthTime = (math.Pi/2 - 0.05) / 0.4

func TestTwoPointsAtDistanceThreeShareOneEdge(t *testing.T) {
	field := NewFromPoints(Config{Threshold: 4.5}, []Point{
		{Origin: Vec3{X: 0, Y: 0, Z: 0}, Phase: 1},
		{Origin: Vec3{X: 3, Y: 0, Z: 0}, Phase: 1},
	})

	frame := field.Step(equalDepthTime)
	require.True(t, frame.Valid())
	require.Len(t, frame.Edges, 1)

	e := frame.Edges[0]
	assert.Equal(t, 0, e.A)
	assert.Equal(t, 1, e.B)
	assert.InDelta(t, 3, e.Distance, 1e-9)
	assert.InDelta(t, 1-3/4.5, e.Opacity, 1e-9)
	assert.InDelta(t, 0.333, e.Opacity, 1e-3)
}

func TestConnectSkipsDistantPairs(t *testing.T) {
	edges := connect([]Vec3{{X: 0}, {X: 4.5}, {X: 20}}, 4.5, 0)
	assert.Empty(t, edges)

	edges = connect([]Vec3{{X: 0}, {X: 1}, {X: 2}}, 4.5, 0)
	assert.Len(t, edges, 3)
}

func TestPointerOutsideRadiusHasNoInfluence(t *testing.T) {
	cfg := Config{Seed: 7}
	field := New(cfg)
	reference := New(cfg)

	field.SetPointerWorld(Vec3{X: 500, Y: 500})
	for _, ts := range []float64{0.5, 3, 12.25} {
		got := field.Step(ts)
		want := reference.Step(ts)
		require.Equal(t, want.Positions, got.Positions)
	}

	for i := 0; i < field.Len(); i++ {
		p := field.Point(i)
		assert.Equal(t, restPosition(&p, 12.25), p.Position)
	}
}

func TestPointerNeverMovedHasNoInfluence(t *testing.T) {
	field := NewFromPoints(Config{}, []Point{{Origin: Vec3{X: 0.5, Y: 0.5}}})
	field.Step(2)
	p := field.Point(0)
	assert.Equal(t, restPosition(&p, 2), p.Position)
}

func TestPointerDisplacementPointsAway(t *testing.T) {
	pointer := Vec3{X: 1, Y: 1}
	pos := Vec3{X: 4, Y: 5}

	disp, influence := pointerDisplacement(pos, pointer, 8, 0.5, 1.3)
	d := pos.Dist(pointer)
	assert.InDelta(t, 1-d/8, influence, 1e-12)

	ripple := math.Sin(1.3*4-d*0.5) * influence * 0.5
	assert.InDelta(t, math.Abs(ripple), disp.Len(), 1e-12)

	away := pos.Sub(pointer).Normalize()
	cross := disp.X*away.Y - disp.Y*away.X
	assert.InDelta(t, 0, cross, 1e-12)

	disp, influence = pointerDisplacement(Vec3{X: 9}, Vec3{}, 8, 0.5, 1.3)
	assert.Equal(t, Vec3{}, disp)
	assert.Equal(t, 0.0, influence)
}

func TestWrapKeepsPointsBounded(t *testing.T) {
	field := NewFromPoints(Config{WrapBound: 15}, []Point{
		{Origin: Vec3{X: 12, Y: -12}, Velocity: Vec3{X: 0.5, Y: -0.5}},
	})

	wraps := 0
	lastVX := 0.5
	for ts := 0.0; ts < 200; ts += 0.25 {
		field.Step(ts)
		p := field.Point(0)
		require.LessOrEqual(t, math.Abs(p.Position.X), 15.0)
		require.LessOrEqual(t, math.Abs(p.Position.Y), 15.0)
		if p.Velocity.X != lastVX {
			wraps++
			lastVX = p.Velocity.X
		}
	}
	assert.Greater(t, wraps, 1)
}

func TestFieldCountsAndBuffers(t *testing.T) {
	full := New(Config{Seed: 3})
	assert.Equal(t, DefaultCount, full.Len())

	reduced := New(Config{Seed: 3, Reduced: true})
	assert.Equal(t, DefaultCount/2, reduced.Len())

	frame := full.Step(1)
	require.True(t, frame.Valid())
	assert.Equal(t, full.Len(), frame.PointCount())
	assert.Equal(t, len(frame.Edges)*6, len(frame.EdgePositions))

	broken := *frame
	broken.Colors = broken.Colors[:3]
	assert.False(t, broken.Valid())
	assert.False(t, (*Frame)(nil).Valid())
}

func TestFieldAttachFollowsClock(t *testing.T) {
	mock := clock.NewMockTimeProvider(time.Unix(0, 0))
	c := clock.New(mock)
	field := New(Config{Seed: 11, Count: 10})

	release := field.Attach(c)
	mock.Advance(2 * time.Second)
	c.Advance()
	assert.InDelta(t, 2, field.Frame().Elapsed, 1e-9)

	release()
	assert.Equal(t, 0, c.Subscribers())
}

func TestCameraProjection(t *testing.T) {
	cam := DefaultCamera()
	x, y, scale, ok := cam.Project(Vec3{}, 1920, 1080)
	require.True(t, ok)
	assert.InDelta(t, 960, x, 1e-9)
	assert.InDelta(t, 540, y, 1e-9)

	_, h := cam.VisibleSize(16.0 / 9.0)
	assert.InDelta(t, 1080/h, scale, 1e-9)

	_, _, _, ok = cam.Project(Vec3{Z: 13}, 1920, 1080)
	assert.False(t, ok)
}
