package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcherFIFO(t *testing.T) {
	d := NewDispatcher()

	var seen []string
	d.On(PointerMove, func(ev Event) { seen = append(seen, "move") })
	d.On(Wheel, func(ev Event) {
		seen = append(seen, "wheel")
		d.Post(Event{Kind: KeyPress, Key: KeyDown})
	})
	d.On(KeyPress, func(ev Event) { seen = append(seen, "key") })

	d.Post(Event{Kind: Wheel, Delta: 120})
	d.Post(Event{Kind: PointerMove, X: 1, Y: 2})
	d.Flush()

	assert.Equal(t, []string{"wheel", "move", "key"}, seen)
	assert.Equal(t, uint64(3), d.Dispatched())
}

func TestDispatcherRelease(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	release := d.On(PointerDown, func(Event) { calls++ })
	assert.Equal(t, 1, d.Listeners(PointerDown))

	d.Dispatch(Event{Kind: PointerDown})
	release()
	release()
	d.Dispatch(Event{Kind: PointerDown})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, d.Total())
}

func TestDispatcherReleaseOtherDuringDelivery(t *testing.T) {
	d := NewDispatcher()
	var order []int
	var releaseSecond func()
	d.On(Resize, func(Event) {
		order = append(order, 1)
		releaseSecond()
	})
	releaseSecond = d.On(Resize, func(Event) { order = append(order, 2) })

	d.Dispatch(Event{Kind: Resize})
	assert.Equal(t, []int{1}, order)
	assert.Equal(t, 1, d.Listeners(Resize))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "wheel", Wheel.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
