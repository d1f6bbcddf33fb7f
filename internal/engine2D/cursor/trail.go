package cursor

import "time"

const DefaultTrailCapacity = 12

type Sample struct {
	X, Y float64
	At   time.Time
}

// Trail keeps the most recent pointer samples, newest first. Its length never
// exceeds its capacity however fast samples arrive.
type Trail struct {
	buf   []Sample
	head  int // index of the newest sample
	count int
}

func NewTrail(capacity int) *Trail {
	if capacity <= 0 {
		capacity = DefaultTrailCapacity
	}
	return &Trail{buf: make([]Sample, capacity)}
}

// Push records s as the newest sample, evicting the oldest when full.
func (t *Trail) Push(s Sample) {
	t.head = (t.head - 1 + len(t.buf)) % len(t.buf)
	t.buf[t.head] = s
	if t.count < len(t.buf) {
		t.count++
	}
}

func (t *Trail) Len() int { return t.count }

func (t *Trail) Cap() int { return len(t.buf) }

// At returns the i-th sample; 0 is the newest.
func (t *Trail) At(i int) Sample {
	return t.buf[(t.head+i)%len(t.buf)]
}

// Samples copies the trail out, newest first.
func (t *Trail) Samples() []Sample {
	out := make([]Sample, t.count)
	for i := range out {
		out[i] = t.At(i)
	}
	return out
}

func (t *Trail) Reset() {
	t.head, t.count = 0, 0
}

// Decay is the opacity and scale factor for the sample at index i: 1 for the
// newest, falling linearly toward 0 at the capacity.
func Decay(i, capacity int) float64 {
	if capacity <= 0 || i >= capacity {
		return 0
	}
	return 1 - float64(i)/float64(capacity)
}
