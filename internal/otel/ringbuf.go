package otel

import (
	"strings"
	"sync"
)

// DefaultRingSize is the ring capacity used when none is given.
const DefaultRingSize = 256

// RingBuffer keeps the most recent events. Safe for concurrent use.
type RingBuffer struct {
	mu    sync.Mutex
	buf   []Event
	head  int // next write position
	count int
}

// NewRingBuffer creates a ring buffer holding size events.
func NewRingBuffer(size int) *RingBuffer {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &RingBuffer{buf: make([]Event, size)}
}

// Push adds an event, overwriting the oldest when full.
// Extra is copied so callers may reuse their map.
func (r *RingBuffer) Push(e Event) {
	if e.Extra != nil {
		extra := make(map[string]any, len(e.Extra))
		for k, v := range e.Extra {
			extra[k] = v
		}
		e.Extra = extra
	}
	r.mu.Lock()
	r.buf[r.head] = e
	r.head = (r.head + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
	r.mu.Unlock()
}

// at returns the i-th event counted from the oldest. Caller holds r.mu.
func (r *RingBuffer) at(i int) Event {
	start := (r.head - r.count + len(r.buf)) % len(r.buf)
	return r.buf[(start+i)%len(r.buf)]
}

// Snapshot returns every buffered event, oldest first.
func (r *RingBuffer) Snapshot() []Event {
	return r.Last(r.Cap())
}

// Last returns up to n of the most recent events, oldest first.
func (r *RingBuffer) Last(n int) []Event {
	if n <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	n = min(n, r.count)
	if n == 0 {
		return nil
	}
	out := make([]Event, n)
	for i := range n {
		out[i] = r.at(r.count - n + i)
	}
	return out
}

// Latest returns the newest event whose kind starts with prefix.
func (r *RingBuffer) Latest(prefix string) (Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := r.count - 1; i >= 0; i-- {
		if e := r.at(i); strings.HasPrefix(string(e.Kind), prefix) {
			return e, true
		}
	}
	return Event{}, false
}

// Len returns the number of buffered events.
func (r *RingBuffer) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Cap returns the buffer capacity.
func (r *RingBuffer) Cap() int {
	return len(r.buf)
}

// Stats counts buffered events by kind.
func (r *RingBuffer) Stats() map[EventKind]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[EventKind]int)
	for i := range r.count {
		counts[r.at(i).Kind]++
	}
	return counts
}
