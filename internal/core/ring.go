package core

// EventRing is a fixed-capacity ring buffer of events. Once full, each push
// overwrites the oldest entry, so memory use stays constant under sustained
// load. It is not safe for concurrent use; callers hold their own locks.
type EventRing struct {
	buf  []Event
	head int // index of the oldest entry
	size int
}

// NewEventRing creates a ring holding at most capacity events.
// A capacity below 1 is treated as 1.
func NewEventRing(capacity int) *EventRing {
	if capacity < 1 {
		capacity = 1
	}
	return &EventRing{buf: make([]Event, capacity)}
}

// Push appends an event, evicting the oldest entry when the ring is full.
func (r *EventRing) Push(event Event) {
	if r.size < len(r.buf) {
		r.buf[(r.head+r.size)%len(r.buf)] = event
		r.size++
		return
	}
	r.buf[r.head] = event
	r.head = (r.head + 1) % len(r.buf)
}

// Len returns the number of events currently held.
func (r *EventRing) Len() int {
	return r.size
}

// Cap returns the ring capacity.
func (r *EventRing) Cap() int {
	return len(r.buf)
}

// InOrder returns a copy of the held events, oldest first.
func (r *EventRing) InOrder() []Event {
	out := make([]Event, 0, r.size)
	for i := 0; i < r.size; i++ {
		out = append(out, r.buf[(r.head+i)%len(r.buf)])
	}
	return out
}

// NewestFirst returns a copy of the held events, newest first.
func (r *EventRing) NewestFirst() []Event {
	out := make([]Event, 0, r.size)
	for i := r.size - 1; i >= 0; i-- {
		out = append(out, r.buf[(r.head+i)%len(r.buf)])
	}
	return out
}
