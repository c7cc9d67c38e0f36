package piecequeue

import "errors"

var (
	ErrFull       = errors.New("piecequeue: queue is full")
	ErrEmpty      = errors.New("piecequeue: queue is empty")
	ErrOutOfRange = errors.New("piecequeue: position out of range")
)

// Queue is a fixed-capacity circular FIFO. Removing the front element never
// shifts the others; head and tail wrap modulo the capacity instead.
//
// Queue is not safe for concurrent use.
type Queue[T any] struct {
	buffer []T
	head   int // front element
	tail   int // next free slot
	count  int
}

// New creates an empty Queue holding at most capacity elements.
func New[T any](capacity int) *Queue[T] {
	// A zero-slot ring would make every modulo undefined.
	if capacity < 1 {
		capacity = 1
	}
	return &Queue[T]{
		buffer: make([]T, capacity),
	}
}

// physical maps logical position i (0 = front) to a slot in buffer.
func (q *Queue[T]) physical(i int) int {
	return (q.head + i) % len(q.buffer)
}

func (q *Queue[T]) IsEmpty() bool { return q.count == 0 }

func (q *Queue[T]) IsFull() bool { return q.count == len(q.buffer) }

// Len returns how many elements are queued.
func (q *Queue[T]) Len() int { return q.count }

func (q *Queue[T]) Cap() int { return len(q.buffer) }

// FreeSlots returns how many more elements can be enqueued before the queue is full.
func (q *Queue[T]) FreeSlots() int { return len(q.buffer) - q.count }

// Enqueue appends val at the back. It returns ErrFull and leaves the queue
// untouched when there is no room.
func (q *Queue[T]) Enqueue(val T) error {
	if q.IsFull() {
		return ErrFull
	}
	q.buffer[q.tail] = val
	q.tail = (q.tail + 1) % len(q.buffer)
	q.count++
	return nil
}

// Dequeue removes and returns the front element, or the zero T and ErrEmpty.
func (q *Queue[T]) Dequeue() (T, error) {
	var zero T
	if q.IsEmpty() {
		return zero, ErrEmpty
	}
	val := q.buffer[q.head]
	q.buffer[q.head] = zero
	q.head = (q.head + 1) % len(q.buffer)
	q.count--
	return val, nil
}

// PeekFront returns the front element without removing it.
func (q *Queue[T]) PeekFront() (T, error) {
	if q.IsEmpty() {
		var zero T
		return zero, ErrEmpty
	}
	return q.buffer[q.head], nil
}

// At returns the element at logical position i, counted from the front.
func (q *Queue[T]) At(i int) (T, error) {
	if i < 0 || i >= q.count {
		var zero T
		return zero, ErrOutOfRange
	}
	return q.buffer[q.physical(i)], nil
}

// Replace overwrites the element at logical position i in place and returns
// the value it held. Length and order of the other elements are unchanged.
func (q *Queue[T]) Replace(i int, val T) (T, error) {
	if i < 0 || i >= q.count {
		var zero T
		return zero, ErrOutOfRange
	}
	slot := q.physical(i)
	old := q.buffer[slot]
	q.buffer[slot] = val
	return old, nil
}

// Snapshot copies the live elements in front-to-back order.
func (q *Queue[T]) Snapshot() []T {
	out := make([]T, q.count)
	for i := range out {
		out[i] = q.buffer[q.physical(i)]
	}
	return out
}

// Reset drops every element.
func (q *Queue[T]) Reset() {
	clear(q.buffer)
	q.head, q.tail, q.count = 0, 0, 0
}
