package reservestack_test

import (
	"testing"

	"github.com/i5heu/GoPieceQueue/pkg/piece"
	"github.com/i5heu/GoPieceQueue/pkg/reservestack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStackIsEmpty(t *testing.T) {
	s := reservestack.New[piece.Piece](3)
	assert.True(t, s.IsEmpty())
	assert.False(t, s.IsFull())
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 3, s.Cap())
	assert.Empty(t, s.Snapshot())

	_, err := s.Pop()
	assert.ErrorIs(t, err, reservestack.ErrEmpty)
	_, err = s.PeekTop()
	assert.ErrorIs(t, err, reservestack.ErrEmpty)
}

func TestLIFO(t *testing.T) {
	s := reservestack.New[piece.Piece](3)
	for id := uint64(0); id < 3; id++ {
		require.NoError(t, s.Push(piece.Piece{Kind: piece.O, ID: id}))
	}

	p, err := s.Pop()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), p.ID)

	p, err = s.Pop()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), p.ID)

	assert.Equal(t, 1, s.Len())
}

func TestPushOnFull(t *testing.T) {
	s := reservestack.New[int](2)
	require.NoError(t, s.Push(1))
	require.NoError(t, s.Push(2))
	assert.True(t, s.IsFull())
	assert.Equal(t, 0, s.FreeSlots())

	assert.ErrorIs(t, s.Push(3), reservestack.ErrFull)
	assert.Equal(t, []int{2, 1}, s.Snapshot())
}

func TestSnapshotTopToBase(t *testing.T) {
	s := reservestack.New[int](4)
	for i := 1; i <= 3; i++ {
		require.NoError(t, s.Push(i))
	}
	assert.Equal(t, []int{3, 2, 1}, s.Snapshot())

	top, err := s.PeekTop()
	require.NoError(t, err)
	assert.Equal(t, 3, top)
	assert.Equal(t, 3, s.Len(), "PeekTop must not consume")
}

func TestAtAndReplaceFromTop(t *testing.T) {
	s := reservestack.New[int](3)
	for i := 1; i <= 3; i++ {
		require.NoError(t, s.Push(i))
	}

	for pos, want := range []int{3, 2, 1} {
		got, err := s.At(pos)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	old, err := s.Replace(1, 20)
	require.NoError(t, err)
	assert.Equal(t, 2, old)
	assert.Equal(t, []int{3, 20, 1}, s.Snapshot())

	_, err = s.At(3)
	assert.ErrorIs(t, err, reservestack.ErrOutOfRange)
	_, err = s.Replace(-1, 0)
	assert.ErrorIs(t, err, reservestack.ErrOutOfRange)
}

func TestBoundsNeverExceeded(t *testing.T) {
	s := reservestack.New[int](3)
	for i := 0; i < 100; i++ {
		if i%3 == 2 {
			_, _ = s.Pop()
		} else {
			_ = s.Push(i)
		}
		require.GreaterOrEqual(t, s.Len(), 0)
		require.LessOrEqual(t, s.Len(), 3)
	}
}

func TestReset(t *testing.T) {
	s := reservestack.New[int](2)
	require.NoError(t, s.Push(1))
	s.Reset()
	assert.True(t, s.IsEmpty())
	require.NoError(t, s.Push(5))
	assert.Equal(t, []int{5}, s.Snapshot())
}
