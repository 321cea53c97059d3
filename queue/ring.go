// Package queue provides a generic bounded FIFO queue primitive.
package queue

// A Ring is a bounded first-in first-out queue backed by a ring buffer.
// It is not safe for concurrent use: a Ring is meant to be owned by a
// single simulation component.
type Ring[T any] struct {
	buf  []T
	head int
	size int
}

// NewRing returns an empty ring with the given capacity. It panics if
// capacity is not positive.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		panic("queue: capacity must be positive")
	}
	return &Ring[T]{buf: make([]T, capacity)}
}

// Push appends v to the queue and reports whether it fit.
func (r *Ring[T]) Push(v T) bool {
	if r.size == len(r.buf) {
		return false
	}
	r.buf[(r.head+r.size)%len(r.buf)] = v
	r.size++
	return true
}

// Pop removes and returns the oldest element. The second return value is
// false if the queue is empty.
func (r *Ring[T]) Pop() (T, bool) {
	var zero T
	if r.size == 0 {
		return zero, false
	}
	v := r.buf[r.head]
	r.buf[r.head] = zero
	r.head = (r.head + 1) % len(r.buf)
	r.size--
	return v, true
}

// Peek returns the oldest element without removing it.
func (r *Ring[T]) Peek() (T, bool) {
	var zero T
	if r.size == 0 {
		return zero, false
	}
	return r.buf[r.head], true
}

// Len returns the number of queued elements.
func (r *Ring[T]) Len() int { return r.size }

// Cap returns the queue capacity.
func (r *Ring[T]) Cap() int { return len(r.buf) }

// Empty reports whether the queue is empty.
func (r *Ring[T]) Empty() bool { return r.size == 0 }

// Full reports whether the queue is full.
func (r *Ring[T]) Full() bool { return r.size == len(r.buf) }

// Reset discards all queued elements.
func (r *Ring[T]) Reset() {
	var zero T
	for i := range r.buf {
		r.buf[i] = zero
	}
	r.head, r.size = 0, 0
}
