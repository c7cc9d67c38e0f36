package piece

import (
	"fmt"
	"math/rand/v2"
)

// Kind is the shape symbol of a piece.
type Kind byte

const (
	I Kind = 'I'
	O Kind = 'O'
	T Kind = 'T'
	L Kind = 'L'
)

// Kinds is the fixed set new pieces are drawn from.
var Kinds = [...]Kind{I, O, T, L}

func (k Kind) String() string {
	return string(rune(k))
}

// Valid reports whether k is one of Kinds.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Piece is an immutable shape plus its session-unique id.
type Piece struct {
	Kind Kind
	ID   uint64
}

func (p Piece) String() string {
	return fmt.Sprintf("[%s %d]", p.Kind, p.ID)
}

// IDGenerator hands out sequential ids starting at 0. It is owned by one
// session and is not safe for concurrent use.
type IDGenerator struct {
	next uint64
}

// Next returns the current id and advances the counter.
func (g *IDGenerator) Next() uint64 {
	id := g.next
	g.next++
	return id
}

// Issued returns how many ids have been handed out so far.
func (g *IDGenerator) Issued() uint64 {
	return g.next
}

// Generator is the only source of new pieces. Two generators built with the
// same seed produce the same sequence.
type Generator struct {
	rng *rand.Rand
	ids IDGenerator
}

// NewGenerator creates a generator whose kind selection is driven by a PCG
// source seeded with seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Next draws a kind uniformly from Kinds and stamps it with the next id.
func (g *Generator) Next() Piece {
	return Piece{
		Kind: Kinds[g.rng.IntN(len(Kinds))],
		ID:   g.ids.Next(),
	}
}

// Issued returns the number of pieces generated so far.
func (g *Generator) Issued() uint64 {
	return g.ids.Issued()
}
