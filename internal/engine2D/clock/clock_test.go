package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFrameClockDeliversElapsedAndDelta(t *testing.T) {
	mock := NewMockTimeProvider(epoch)
	c := New(mock)

	var got []Tick
	c.Subscribe(func(tick Tick) { got = append(got, tick) })

	mock.Advance(16 * time.Millisecond)
	c.Advance()
	mock.Advance(34 * time.Millisecond)
	c.Advance()

	require.Len(t, got, 2)
	assert.InDelta(t, 0.016, got[0].Delta, 1e-9)
	assert.InDelta(t, 0.016, got[0].Elapsed, 1e-9)
	assert.InDelta(t, 0.034, got[1].Delta, 1e-9)
	assert.InDelta(t, 0.050, got[1].Elapsed, 1e-9)
}

func TestFrameClockUnsubscribeStopsDelivery(t *testing.T) {
	mock := NewMockTimeProvider(epoch)
	c := New(mock)

	calls := 0
	release := c.Subscribe(func(Tick) { calls++ })
	c.Advance()
	release()
	release()
	c.Advance()

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, c.Subscribers())
}

func TestFrameClockReleaseDuringDelivery(t *testing.T) {
	c := New(NewMockTimeProvider(epoch))

	var order []string
	var releaseB func()
	c.Subscribe(func(Tick) {
		order = append(order, "a")
		releaseB()
	})
	releaseB = c.Subscribe(func(Tick) { order = append(order, "b") })
	c.Subscribe(func(Tick) { order = append(order, "c") })

	c.Advance()
	c.Advance()

	assert.Equal(t, []string{"a", "c", "a", "c"}, order)
}

func TestFrameClockSuspendExcludesHiddenTime(t *testing.T) {
	mock := NewMockTimeProvider(epoch)
	c := New(mock)

	var last Tick
	c.Subscribe(func(tick Tick) { last = tick })

	mock.Advance(time.Second)
	c.Advance()

	c.Suspend()
	mock.Advance(10 * time.Second)
	_, delivered := c.Advance()
	assert.False(t, delivered)

	c.Resume()
	mock.Advance(100 * time.Millisecond)
	_, delivered = c.Advance()
	require.True(t, delivered)

	assert.InDelta(t, 0.1, last.Delta, 1e-9)
	assert.InDelta(t, 1.1, last.Elapsed, 1e-9)
}

func TestMockTimeProvider(t *testing.T) {
	mock := NewMockTimeProvider(epoch)
	mock.Advance(time.Hour)
	assert.True(t, mock.Now().Equal(epoch.Add(time.Hour)))

	later := epoch.Add(48 * time.Hour)
	mock.SetTime(later)
	assert.True(t, mock.Now().Equal(later))
}
