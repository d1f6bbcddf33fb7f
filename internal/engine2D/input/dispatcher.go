package input

type Handler func(Event)

type listener struct {
	fn       Handler
	released bool
}

// Dispatcher queues events for the frame and delivers them in arrival order.
// Like the frame clock it belongs to the render loop goroutine.
type Dispatcher struct {
	listeners  [kindCount][]*listener
	queue      []Event
	flushing   bool
	dispatched uint64
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// On registers h for events of kind k. The returned func removes it and may
// be called any number of times.
func (d *Dispatcher) On(k Kind, h Handler) func() {
	l := &listener{fn: h}
	d.listeners[k] = append(d.listeners[k], l)
	return func() {
		if l.released {
			return
		}
		l.released = true
		list := d.listeners[k]
		for i, other := range list {
			if other == l {
				d.listeners[k] = append(list[:i:i], list[i+1:]...)
				break
			}
		}
	}
}

// Post queues ev for the next Flush.
func (d *Dispatcher) Post(ev Event) {
	d.queue = append(d.queue, ev)
}

// Flush delivers every queued event, including events posted by handlers
// while flushing.
func (d *Dispatcher) Flush() {
	if d.flushing {
		return
	}
	d.flushing = true
	defer func() { d.flushing = false }()

	for len(d.queue) > 0 {
		ev := d.queue[0]
		d.queue = d.queue[1:]
		d.Dispatch(ev)
	}
	d.queue = d.queue[:0]
}

// Dispatch delivers ev immediately.
func (d *Dispatcher) Dispatch(ev Event) {
	if ev.Kind < 0 || ev.Kind >= kindCount {
		return
	}
	list := d.listeners[ev.Kind]
	snapshot := make([]*listener, len(list))
	copy(snapshot, list)
	for _, l := range snapshot {
		if l.released {
			continue
		}
		l.fn(ev)
	}
	d.dispatched++
}

func (d *Dispatcher) Listeners(k Kind) int {
	if k < 0 || k >= kindCount {
		return 0
	}
	return len(d.listeners[k])
}

// Total returns the number of live listeners across all kinds.
func (d *Dispatcher) Total() int {
	n := 0
	for k := Kind(0); k < kindCount; k++ {
		n += len(d.listeners[k])
	}
	return n
}

func (d *Dispatcher) Dispatched() uint64 {
	return d.dispatched
}
