package scroll

import (
	"testing"
	"time"

	"ambient-portfolio/internal/engine2D/clock"
	"ambient-portfolio/internal/engine2D/input"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 1.0 / 60.0

type recordingViewport struct {
	offsets []float64
}

func (v *recordingViewport) SetScrollOffset(offset float64) {
	v.offsets = append(v.offsets, offset)
}

func TestFactorMatchesRateAtSixtyHertz(t *testing.T) {
	assert.InDelta(t, 0.1, Factor(0.1, frame), 1e-12)
	assert.InDelta(t, 0.19, Factor(0.1, 2*frame), 1e-12)
	assert.Equal(t, 0.0, Factor(0.1, 0))
	assert.Equal(t, 1.0, Factor(1, frame))
}

func TestProxyConvergence(t *testing.T) {
	p := New(nil, nil, nil, Options{Max: 5000})
	p.ScrollTo(1000)

	p.Step(frame)
	assert.InDelta(t, 100, p.Offset(), 1e-6)

	for i := 2; i <= 10; i++ {
		p.Step(frame)
	}
	assert.InDelta(t, 651.32, p.Offset(), 0.01)

	for i := 11; i <= 65; i++ {
		p.Step(frame)
	}
	assert.Less(t, p.Offset(), 1000.0)
	assert.False(t, p.Settled())

	p.Step(frame)
	assert.Equal(t, 1000.0, p.Offset())
	assert.True(t, p.Settled())
}

func TestProxyMonotonicWithoutOvershoot(t *testing.T) {
	p := New(nil, nil, nil, Options{Max: 5000})
	p.ScrollTo(1000)

	dts := []float64{frame, 0.1, 0.002, 0.5, frame, 2, frame}
	prev := p.Offset()
	for i := 0; i < 200; i++ {
		p.Step(dts[i%len(dts)])
		require.GreaterOrEqual(t, p.Offset(), prev)
		require.LessOrEqual(t, p.Offset(), 1000.0)
		prev = p.Offset()
	}
	assert.Equal(t, 1000.0, p.Offset())

	p.ScrollTo(200)
	for i := 0; i < 200; i++ {
		p.Step(dts[i%len(dts)])
		require.LessOrEqual(t, p.Offset(), prev)
		require.GreaterOrEqual(t, p.Offset(), 200.0)
		prev = p.Offset()
	}
	assert.Equal(t, 200.0, p.Offset())
}

func TestProxyClampsTarget(t *testing.T) {
	p := New(nil, nil, nil, Options{Max: 300})
	p.ScrollBy(-50)
	assert.Equal(t, 0.0, p.Target())
	p.ScrollTo(10_000)
	assert.Equal(t, 300.0, p.Target())

	p.Jump(250)
	p.SetMax(100)
	assert.Equal(t, 100.0, p.Offset())
	assert.Equal(t, 100.0, p.Target())
}

func TestProxyDrivenByClockAndInput(t *testing.T) {
	mock := clock.NewMockTimeProvider(time.Unix(0, 0))
	c := clock.New(mock)
	d := input.NewDispatcher()
	vp := &recordingViewport{}

	p := New(c, d, vp, Options{Max: 2000, PageHeight: 500})

	var updates []Update
	p.OnScroll(func(u Update) { updates = append(updates, u) })

	d.Dispatch(input.Event{Kind: input.Wheel, Delta: 400})
	assert.Equal(t, 400.0, p.Target())

	mock.Advance(16 * time.Millisecond)
	c.Advance()
	require.Len(t, updates, 1)
	assert.Equal(t, 1, updates[0].Direction)
	assert.Greater(t, updates[0].Velocity, 0.0)
	assert.Equal(t, vp.offsets[0], p.Offset())

	d.Dispatch(input.Event{Kind: input.KeyPress, Key: input.KeyPageDown})
	assert.Equal(t, 850.0, p.Target())

	p.LockKeys(true)
	d.Dispatch(input.Event{Kind: input.KeyPress, Key: input.KeyEnd})
	assert.Equal(t, 850.0, p.Target())
	p.LockKeys(false)
	d.Dispatch(input.Event{Kind: input.KeyPress, Key: input.KeyEnd})
	assert.Equal(t, 2000.0, p.Target())

	p.Close()
	p.Close()
	assert.Equal(t, 0, c.Subscribers())
	assert.Equal(t, 0, d.Total())

	before := p.Offset()
	mock.Advance(16 * time.Millisecond)
	c.Advance()
	assert.Equal(t, before, p.Offset())
}

func TestProxyInstantWhenRateIsOne(t *testing.T) {
	p := New(nil, nil, nil, Options{Max: 1000, Rate: 1})
	p.ScrollTo(640)
	p.Step(frame)
	assert.Equal(t, 640.0, p.Offset())
}
