package testbench

import (
	"context"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/i5heu/GoPieceQueue/pkg/config"
	"github.com/i5heu/GoPieceQueue/pkg/game"
)

// Config describes one benchmark workload: how many independent sessions run
// side by side and how each is sized. Sessions never share state.
type Config struct {
	Name        string
	NumSessions int
	Session     config.Config
}

// Result is what RunTimedTest measured.
type Result struct {
	Actions  int64
	Failures int64
	Pieces   uint64 // pieces generated across all sessions
	Elapsed  time.Duration
}

// ActionPicker chooses the next action for a session.
type ActionPicker func(rng *rand.Rand) game.Action

// UniformActions picks every action with equal probability.
func UniformActions(rng *rand.Rand) game.Action {
	return game.Actions[rng.IntN(len(game.Actions))]
}

// RunTimedTest starts cfg.NumSessions sessions, each on its own goroutine,
// and feeds them actions from pick until testDuration expires. Session i is
// seeded with cfg.Session.Seed+i so runs are reproducible per worker.
func RunTimedTest(cfg Config, testDuration time.Duration, pick ActionPicker) (Result, error) {
	sessions := make([]*game.Session, cfg.NumSessions)
	for i := range sessions {
		sc := cfg.Session
		sc.Seed += uint64(i)
		s, err := game.NewSession(sc)
		if err != nil {
			return Result{}, err
		}
		sessions[i] = s
	}

	// Create a context that will cancel after testDuration.
	ctx, cancel := context.WithTimeout(context.Background(), testDuration)
	defer cancel()

	var totalActions int64
	var totalFailures int64

	// done will be set to 1 when test duration expires.
	var done int32
	go func() {
		<-ctx.Done()
		atomic.StoreInt32(&done, 1)
	}()

	start := time.Now()

	var wg sync.WaitGroup
	wg.Add(len(sessions))
	for i, s := range sessions {
		go func(worker int, s *game.Session) {
			defer wg.Done()
			rng := rand.New(rand.NewPCG(uint64(worker), cfg.Session.Seed))
			var actions, failures int64
			// Tight loop that checks the atomic flag.
			for atomic.LoadInt32(&done) == 0 {
				if _, err := s.Do(pick(rng)); err != nil {
					failures++
				}
				actions++
			}
			atomic.AddInt64(&totalActions, actions)
			atomic.AddInt64(&totalFailures, failures)
		}(i, s)
	}

	<-ctx.Done()
	wg.Wait()

	res := Result{
		Actions:  atomic.LoadInt64(&totalActions),
		Failures: atomic.LoadInt64(&totalFailures),
		Elapsed:  time.Since(start),
	}
	for _, s := range sessions {
		res.Pieces += s.Stats().Generated
	}
	return res, nil
}
