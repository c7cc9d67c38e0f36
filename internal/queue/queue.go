package queue

import (
	"github.com/i5heu/GoPieceQueue/pkg/piecequeue"
	"github.com/i5heu/GoPieceQueue/pkg/reservestack"
)

// Bounded is what every fixed-capacity piece container offers, regardless of
// whether it hands elements out FIFO or LIFO.
type Bounded[T any] interface {
	IsEmpty() bool
	IsFull() bool

	// Len returns how many elements are currently held.
	Len() int

	// Cap returns the fixed capacity chosen at construction.
	Cap() int

	// FreeSlots returns how many more elements fit before the container is full.
	FreeSlots() int

	// Snapshot copies the live elements in removal order.
	Snapshot() []T

	Reset()
}

// Positional is a Bounded container whose live elements can be read and
// overwritten in place by logical position, where position 0 is the element
// that would be removed next.
type Positional[T any] interface {
	Bounded[T]
	At(i int) (T, error)
	Replace(i int, val T) (T, error)
}

// Compile-time enforcement that both containers satisfy Positional.
var (
	_ Positional[int] = (*piecequeue.Queue[int])(nil)
	_ Positional[int] = (*reservestack.Stack[int])(nil)
)
