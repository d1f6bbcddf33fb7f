// Package clock provides the single per-frame time source shared by every
// animated effect. Consumers must drive their physics from Tick.Elapsed and
// Tick.Delta, never from a count of ticks: the interval between ticks is not
// fixed and delivery stops entirely while the clock is suspended.
package clock

import "time"

// Tick is delivered once per displayed frame.
type Tick struct {
	Elapsed float64 // seconds since the clock started, suspended time excluded
	Delta   float64 // seconds since the previous delivered tick
	Frame   uint64  // informational; do not derive motion from it
}

type Subscriber func(Tick)

type subscription struct {
	fn       Subscriber
	released bool
}

// FrameClock fans one tick per frame out to its subscribers. It is owned by
// the render loop and is not safe for concurrent use.
type FrameClock struct {
	provider TimeProvider
	subs     []*subscription

	start       time.Time
	last        time.Time
	suspended   bool
	suspendedAt time.Time
	pausedTotal time.Duration
	frame       uint64
}

func New(provider TimeProvider) *FrameClock {
	if provider == nil {
		provider = NewMonotonicTimeProvider()
	}
	now := provider.Now()
	return &FrameClock{
		provider: provider,
		start:    now,
		last:     now,
	}
}

// Subscribe registers fn for every following tick. The returned function
// releases the subscription; calling it more than once is harmless, and a
// subscription released mid-delivery does not receive the tick in flight.
func (c *FrameClock) Subscribe(fn Subscriber) func() {
	sub := &subscription{fn: fn}
	c.subs = append(c.subs, sub)
	return func() {
		if sub.released {
			return
		}
		sub.released = true
		for i, s := range c.subs {
			if s == sub {
				c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
				break
			}
		}
	}
}

// Advance delivers one tick stamped with the provider's current time. It
// reports false, delivering nothing, while the clock is suspended.
func (c *FrameClock) Advance() (Tick, bool) {
	now := c.provider.Now()
	if c.suspended {
		return Tick{}, false
	}

	delta := now.Sub(c.last).Seconds()
	if delta < 0 {
		delta = 0
	}
	c.last = now
	c.frame++

	tick := Tick{
		Elapsed: (now.Sub(c.start) - c.pausedTotal).Seconds(),
		Delta:   delta,
		Frame:   c.frame,
	}

	snapshot := make([]*subscription, len(c.subs))
	copy(snapshot, c.subs)
	for _, sub := range snapshot {
		if sub.released {
			continue
		}
		sub.fn(tick)
	}
	return tick, true
}

// Suspend stops delivery, e.g. while the window is hidden or minimized.
func (c *FrameClock) Suspend() {
	if c.suspended {
		return
	}
	c.suspended = true
	c.suspendedAt = c.provider.Now()
}

// Resume restarts delivery. The suspended interval is excluded from both
// Elapsed and the next Delta so effects continue where they stopped.
func (c *FrameClock) Resume() {
	if !c.suspended {
		return
	}
	gap := c.provider.Now().Sub(c.suspendedAt)
	if gap > 0 {
		c.pausedTotal += gap
		c.last = c.last.Add(gap)
	}
	c.suspended = false
}

func (c *FrameClock) SetSuspended(suspended bool) {
	if suspended {
		c.Suspend()
	} else {
		c.Resume()
	}
}

func (c *FrameClock) Suspended() bool {
	return c.suspended
}

// Subscribers returns the number of live subscriptions.
func (c *FrameClock) Subscribers() int {
	return len(c.subs)
}

// Now returns the provider's current time, for stamping input samples.
func (c *FrameClock) Now() time.Time {
	return c.provider.Now()
}
