package buffer

// Queue is a float64 FIFO backed by a single slice and a head offset.
// Discard only moves the head; the live region is compacted to the front
// of the backing array once the dead prefix outweighs it, which keeps
// draining O(1) amortized.
type Queue struct {
	data []float64
	head int
}

// New returns an empty Queue with room for capacity samples.
func New(capacity int) *Queue {
	if capacity < 0 {
		capacity = 0
	}
	return &Queue{data: make([]float64, 0, capacity)}
}

// FromSlice wraps an existing slice without copying.
// Mutations to the slice are visible through the Queue and vice versa.
func FromSlice(s []float64) *Queue {
	return &Queue{data: s}
}

// Samples returns the live region. The slice aliases the queue and is
// invalidated by any call that changes the queue's length.
func (q *Queue) Samples() []float64 {
	return q.data[q.head:]
}

// Len returns the number of live samples.
func (q *Queue) Len() int {
	return len(q.data) - q.head
}

// Append adds samples at the back.
func (q *Queue) Append(samples ...float64) {
	q.compact(len(samples))
	q.data = append(q.data, samples...)
}

// ExtendTo grows the live region to n samples, zero-filling the new tail.
// It is a no-op when the queue already holds n or more samples.
func (q *Queue) ExtendTo(n int) {
	grow := n - q.Len()
	if grow <= 0 {
		return
	}
	q.compact(grow)

	oldLen := len(q.data)
	if oldLen+grow <= cap(q.data) {
		q.data = q.data[:oldLen+grow]
	} else {
		s := make([]float64, oldLen+grow, 2*(oldLen+grow))
		copy(s, q.data)
		q.data = s
	}
	// Zero any newly exposed elements that may have stale data from
	// previous use of the backing array.
	for i := oldLen; i < len(q.data); i++ {
		q.data[i] = 0
	}
}

// Discard drops n samples from the front. n is clamped to Len.
func (q *Queue) Discard(n int) {
	if n <= 0 {
		return
	}
	if n >= q.Len() {
		q.Reset()
		return
	}
	q.head += n
}

// Truncate keeps the first n live samples and drops the rest.
func (q *Queue) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n >= q.Len() {
		return
	}
	q.data = q.data[:q.head+n]
}

// Reset empties the queue, keeping its capacity.
func (q *Queue) Reset() {
	q.data = q.data[:0]
	q.head = 0
}

// Copy returns a deep copy of the live samples.
func (q *Queue) Copy() *Queue {
	s := make([]float64, q.Len())
	copy(s, q.Samples())
	return &Queue{data: s}
}

// compact moves the live region to the start of the backing array when the
// dead prefix is at least as large as the live data and the pending growth
// would otherwise reallocate.
func (q *Queue) compact(grow int) {
	if q.head == 0 {
		return
	}
	if len(q.data)+grow <= cap(q.data) && q.head < q.Len() {
		return
	}
	n := copy(q.data, q.data[q.head:])
	q.data = q.data[:n]
	q.head = 0
}
