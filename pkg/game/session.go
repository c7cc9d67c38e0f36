package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/i5heu/GoPieceQueue/pkg/config"
	"github.com/i5heu/GoPieceQueue/pkg/piece"
	"github.com/i5heu/GoPieceQueue/pkg/piecequeue"
	"github.com/i5heu/GoPieceQueue/pkg/reservestack"
)

var ErrUnknownAction = errors.New("game: unknown action")

// Action is one player move.
type Action int

const (
	ActionPlay Action = iota
	ActionReserve
	ActionUseReserved
	ActionSwapFront
	ActionSwapBatch
)

// Actions lists every Action in menu order.
var Actions = [...]Action{ActionPlay, ActionReserve, ActionUseReserved, ActionSwapFront, ActionSwapBatch}

var actionNames = [...]string{
	ActionPlay:        "play",
	ActionReserve:     "reserve",
	ActionUseReserved: "use",
	ActionSwapFront:   "swap",
	ActionSwapBatch:   "batch",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction accepts the names printed by Action.String, case-insensitively.
func ParseAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, a := range Actions {
		if actionNames[a] == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

// Outcome describes a successful action. Piece is set for actions that take a
// single piece out of play (play, reserve, use).
type Outcome struct {
	Action   Action
	Piece    piece.Piece
	HasPiece bool
}

// Stats counts successful actions and rejected ones.
type Stats struct {
	Played    uint64
	Reserved  uint64
	Used      uint64
	Swaps     uint64
	Batches   uint64
	Failures  uint64
	Generated uint64
}

// Session owns one queue, one reserve stack and the generator feeding them.
// It is not safe for concurrent use; run one session per goroutine.
type Session struct {
	id    uuid.UUID
	cfg   config.Config
	queue *Queue
	stack *Stack
	gen   *piece.Generator
	stats Stats
}

// NewSession builds empty containers sized from cfg and fills the queue.
func NewSession(cfg config.Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		id:    uuid.New(),
		cfg:   cfg,
		queue: piecequeue.New[piece.Piece](cfg.QueueCapacity),
		stack: reservestack.New[piece.Piece](cfg.StackCapacity),
		gen:   piece.NewGenerator(cfg.Seed),
	}
	FillQueue(s.queue, s.gen)
	return s, nil
}

func (s *Session) ID() uuid.UUID { return s.id }

func (s *Session) Config() config.Config { return s.cfg }

// Queue returns the upcoming pieces, front first.
func (s *Session) Queue() []piece.Piece { return s.queue.Snapshot() }

// Reserved returns the reserved pieces, top first.
func (s *Session) Reserved() []piece.Piece { return s.stack.Snapshot() }

func (s *Session) Stats() Stats {
	st := s.stats
	st.Generated = s.gen.Issued()
	return st
}

func (s *Session) Play() (piece.Piece, error) {
	p, err := Play(s.queue, s.gen)
	s.count(err, &s.stats.Played)
	return p, err
}

func (s *Session) Reserve() (piece.Piece, error) {
	p, err := Reserve(s.queue, s.stack, s.gen)
	s.count(err, &s.stats.Reserved)
	return p, err
}

func (s *Session) UseReserved() (piece.Piece, error) {
	p, err := UseReserved(s.stack)
	s.count(err, &s.stats.Used)
	return p, err
}

func (s *Session) SwapFront() error {
	err := SwapFront(s.queue, s.stack)
	s.count(err, &s.stats.Swaps)
	return err
}

// SwapBatch swaps Config().BatchSize positions.
func (s *Session) SwapBatch() error {
	err := SwapBatch(s.queue, s.stack, s.cfg.BatchSize)
	s.count(err, &s.stats.Batches)
	return err
}

// Do dispatches a to the matching method.
func (s *Session) Do(a Action) (Outcome, error) {
	out := Outcome{Action: a}
	var err error
	switch a {
	case ActionPlay:
		out.Piece, err = s.Play()
		out.HasPiece = err == nil
	case ActionReserve:
		out.Piece, err = s.Reserve()
		out.HasPiece = err == nil
	case ActionUseReserved:
		out.Piece, err = s.UseReserved()
		out.HasPiece = err == nil
	case ActionSwapFront:
		err = s.SwapFront()
	case ActionSwapBatch:
		err = s.SwapBatch()
	default:
		return out, fmt.Errorf("%w: %d", ErrUnknownAction, int(a))
	}
	if err != nil {
		return Outcome{Action: a}, err
	}
	return out, nil
}

func (s *Session) count(err error, success *uint64) {
	if err != nil {
		s.stats.Failures++
		return
	}
	*success++
}
