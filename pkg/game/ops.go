// Package game implements the player actions that move pieces between the
// upcoming-piece queue and the reserve stack.
//
// Every operation checks all of its preconditions before touching either
// container, so a returned error always means nothing changed.
package game

import (
	"errors"

	"github.com/i5heu/GoPieceQueue/internal/queue"
	"github.com/i5heu/GoPieceQueue/pkg/piece"
	"github.com/i5heu/GoPieceQueue/pkg/piecequeue"
	"github.com/i5heu/GoPieceQueue/pkg/reservestack"
)

// Failure kinds. The container errors are the same values the containers
// return, so errors.Is matches at either layer.
var (
	ErrEmptyQueue         = piecequeue.ErrEmpty
	ErrFullQueue          = piecequeue.ErrFull
	ErrEmptyStack         = reservestack.ErrEmpty
	ErrFullStack          = reservestack.ErrFull
	ErrInsufficientPieces = errors.New("game: not enough pieces for batch swap")
	ErrInvalidBatch       = errors.New("game: batch size must be positive")
)

type (
	Queue = piecequeue.Queue[piece.Piece]
	Stack = reservestack.Stack[piece.Piece]
)

// GeneratePiece is the only way new pieces enter a session.
func GeneratePiece(gen *piece.Generator) piece.Piece {
	return gen.Next()
}

// FillQueue enqueues fresh pieces until q is full and returns how many it added.
func FillQueue(q *Queue, gen *piece.Generator) int {
	added := 0
	for !q.IsFull() {
		// Cannot fail: fullness was just checked.
		_ = q.Enqueue(GeneratePiece(gen))
		added++
	}
	return added
}

// Play consumes the front piece and enqueues one fresh piece in its place,
// so the queue length is unchanged.
func Play(q *Queue, gen *piece.Generator) (piece.Piece, error) {
	played, err := q.Dequeue()
	if err != nil {
		return piece.Piece{}, err
	}
	replenish(q, gen)
	return played, nil
}

// Reserve moves the front piece onto the reserve stack and replenishes the queue.
func Reserve(q *Queue, s *Stack, gen *piece.Generator) (piece.Piece, error) {
	if q.IsEmpty() {
		return piece.Piece{}, ErrEmptyQueue
	}
	if s.IsFull() {
		return piece.Piece{}, ErrFullStack
	}
	reserved, _ := q.Dequeue()
	_ = s.Push(reserved)
	replenish(q, gen)
	return reserved, nil
}

// replenish refills the slot a departing piece just freed.
func replenish(q *Queue, gen *piece.Generator) {
	_ = q.Enqueue(GeneratePiece(gen))
}

// UseReserved consumes the top reserved piece. The queue is not involved.
func UseReserved(s *Stack) (piece.Piece, error) {
	return s.Pop()
}

// SwapFront exchanges the queue's front piece with the stack's top piece.
func SwapFront(q *Queue, s *Stack) error {
	if q.IsEmpty() {
		return ErrEmptyQueue
	}
	if s.IsEmpty() {
		return ErrEmptyStack
	}
	exchange[piece.Piece](q, s, 0)
	return nil
}

// SwapBatch exchanges the first n queue positions with the top n stack
// positions pairwise: queue position i from the front with stack position i
// from the top.
func SwapBatch(q *Queue, s *Stack, n int) error {
	if n < 1 {
		return ErrInvalidBatch
	}
	if q.Len() < n || s.Len() < n {
		return ErrInsufficientPieces
	}
	for i := 0; i < n; i++ {
		exchange[piece.Piece](q, s, i)
	}
	return nil
}

// exchange swaps the values at position i of a and b. Callers have already
// checked that i is live in both.
func exchange[T any](a, b queue.Positional[T], i int) {
	fromB, _ := b.At(i)
	fromA, _ := a.Replace(i, fromB)
	_, _ = b.Replace(i, fromA)
}
