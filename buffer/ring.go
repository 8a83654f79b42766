package buffer

// RingHistory is a fixed-capacity circular buffer that overwrites its
// oldest entry once full. Push and Latest are O(1); Snapshot walks the
// whole ring. It never blocks and is not synchronized; owners serialize
// writes themselves.
type RingHistory[T any] struct {
	items []T
	head  int
	count int
}

// NewRingHistory creates a ring holding at most capacity entries
func NewRingHistory[T any](capacity int) *RingHistory[T] {
	if capacity <= 0 {
		capacity = 1
	}
	return &RingHistory[T]{items: make([]T, capacity)}
}

// Push appends a value, evicting the oldest entry when full
func (r *RingHistory[T]) Push(v T) {
	r.items[r.head] = v
	r.head = (r.head + 1) % len(r.items)
	if r.count < len(r.items) {
		r.count++
	}
}

// Latest returns the most recently pushed value
func (r *RingHistory[T]) Latest() (T, bool) {
	var zero T
	if r.count == 0 {
		return zero, false
	}
	idx := (r.head - 1 + len(r.items)) % len(r.items)
	return r.items[idx], true
}

// Snapshot returns the retained history ordered oldest to newest
func (r *RingHistory[T]) Snapshot() []T {
	out := make([]T, 0, r.count)
	start := (r.head - r.count + len(r.items)) % len(r.items)
	for i := 0; i < r.count; i++ {
		out = append(out, r.items[(start+i)%len(r.items)])
	}
	return out
}

// Len returns the number of retained entries
func (r *RingHistory[T]) Len() int {
	return r.count
}

// Cap returns the ring capacity
func (r *RingHistory[T]) Cap() int {
	return len(r.items)
}

// Clear discards all retained entries
func (r *RingHistory[T]) Clear() {
	r.head = 0
	r.count = 0
}
