package store

// ring is a fixed-capacity circular buffer. Appending to a full ring
// overwrites the oldest entry. Not safe for concurrent use; Store holds
// the lock.
type ring[T any] struct {
	buf   []T
	start int
	size  int
}

func newRing[T any](capacity int) *ring[T] {
	return &ring[T]{buf: make([]T, capacity)}
}

// append inserts v at the tail, evicting the oldest entry when full.
func (r *ring[T]) append(v T) {
	if r.size < len(r.buf) {
		r.buf[(r.start+r.size)%len(r.buf)] = v
		r.size++
		return
	}
	r.buf[r.start] = v
	r.start = (r.start + 1) % len(r.buf)
}

func (r *ring[T]) len() int {
	return r.size
}

// tail copies up to limit of the most recent entries, oldest first.
// limit <= 0 means all.
func (r *ring[T]) tail(limit int) []T {
	n := r.size
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]T, n)
	first := r.start + r.size - n
	for i := 0; i < n; i++ {
		out[i] = r.buf[(first+i)%len(r.buf)]
	}
	return out
}

// reset empties the ring and zeroes the backing array so cleared
// entries do not keep their payloads reachable.
func (r *ring[T]) reset() {
	var zero T
	for i := range r.buf {
		r.buf[i] = zero
	}
	r.start = 0
	r.size = 0
}
