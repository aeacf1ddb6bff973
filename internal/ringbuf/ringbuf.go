// Package ringbuf provides a fixed-capacity ring that keeps the most recent
// values pushed into it. Once full, new pushes overwrite the oldest entry.
// Capacity is rounded up to a power of two for bitwise index wrapping.
package ringbuf

import "sync"

// Ring is a concurrency-safe most-recent-N buffer.
type Ring[T any] struct {
	mu   sync.Mutex
	buf  []T
	mask uint64
	head uint64 // total number of pushes
}

// New creates a ring. capacity is rounded up to the next power of two,
// minimum 2.
func New[T any](capacity int) *Ring[T] {
	n := nextPow2(capacity)
	if n < 2 {
		n = 2
	}
	return &Ring[T]{
		buf:  make([]T, n),
		mask: uint64(n - 1),
	}
}

// Push appends a value, overwriting the oldest entry when full.
func (r *Ring[T]) Push(v T) {
	r.mu.Lock()
	r.buf[r.head&r.mask] = v
	r.head++
	r.mu.Unlock()
}

// Snapshot returns the retained values in push order, oldest first.
func (r *Ring[T]) Snapshot() []T {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := r.head
	if n > uint64(len(r.buf)) {
		n = uint64(len(r.buf))
	}
	out := make([]T, 0, n)
	for i := r.head - n; i < r.head; i++ {
		out = append(out, r.buf[i&r.mask])
	}
	return out
}

// Len returns the number of retained values.
func (r *Ring[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.head > uint64(len(r.buf)) {
		return len(r.buf)
	}
	return int(r.head)
}

// Cap returns the ring capacity.
func (r *Ring[T]) Cap() int {
	return len(r.buf)
}

// nextPow2 returns the smallest power of 2 >= n.
func nextPow2(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}
