package reservestack

import "errors"

var (
	ErrFull       = errors.New("reservestack: stack is full")
	ErrEmpty      = errors.New("reservestack: stack is empty")
	ErrOutOfRange = errors.New("reservestack: position out of range")
)

// Stack is a fixed-capacity LIFO backed by an array addressed from the base.
// top is -1 while the stack is empty.
//
// Stack is not safe for concurrent use.
type Stack[T any] struct {
	items []T
	top   int
}

// New creates an empty Stack holding at most capacity elements.
func New[T any](capacity int) *Stack[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Stack[T]{
		items: make([]T, capacity),
		top:   -1,
	}
}

// physical maps position i counted from the top (0 = top) to a slot in items.
func (s *Stack[T]) physical(i int) int {
	return s.top - i
}

func (s *Stack[T]) IsEmpty() bool { return s.top == -1 }

func (s *Stack[T]) IsFull() bool { return s.top == len(s.items)-1 }

// Len reports the current stack depth.
func (s *Stack[T]) Len() int { return s.top + 1 }

func (s *Stack[T]) Cap() int { return len(s.items) }

// FreeSlots returns how many more elements can be pushed.
func (s *Stack[T]) FreeSlots() int { return len(s.items) - s.Len() }

// Push places val on top, or returns ErrFull without changing the stack.
func (s *Stack[T]) Push(val T) error {
	if s.IsFull() {
		return ErrFull
	}
	s.top++
	s.items[s.top] = val
	return nil
}

// Pop removes and returns the top value, or the zero T and ErrEmpty.
func (s *Stack[T]) Pop() (T, error) {
	var zero T
	if s.IsEmpty() {
		return zero, ErrEmpty
	}
	val := s.items[s.top]
	s.items[s.top] = zero
	s.top--
	return val, nil
}

// PeekTop returns the top value without removing it.
func (s *Stack[T]) PeekTop() (T, error) {
	if s.IsEmpty() {
		var zero T
		return zero, ErrEmpty
	}
	return s.items[s.top], nil
}

// At returns the value i positions below the top.
func (s *Stack[T]) At(i int) (T, error) {
	if i < 0 || i > s.top {
		var zero T
		return zero, ErrOutOfRange
	}
	return s.items[s.physical(i)], nil
}

// Replace overwrites the value i positions below the top and returns the
// previous value.
func (s *Stack[T]) Replace(i int, val T) (T, error) {
	if i < 0 || i > s.top {
		var zero T
		return zero, ErrOutOfRange
	}
	slot := s.physical(i)
	old := s.items[slot]
	s.items[slot] = val
	return old, nil
}

// Snapshot copies the live values, top first.
func (s *Stack[T]) Snapshot() []T {
	out := make([]T, s.Len())
	for i := range out {
		out[i] = s.items[s.physical(i)]
	}
	return out
}

// Reset drops every value.
func (s *Stack[T]) Reset() {
	clear(s.items)
	s.top = -1
}
