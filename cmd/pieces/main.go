package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/i5heu/GoPieceQueue/pkg/config"
	"github.com/i5heu/GoPieceQueue/pkg/game"
	"github.com/i5heu/GoPieceQueue/pkg/piece"
)

const rule = "---------------------------------------------------------------"

// menu maps the numeric choices to actions. 6 shows state, 0 quits.
var menu = map[int]game.Action{
	1: game.ActionPlay,
	2: game.ActionReserve,
	3: game.ActionUseReserved,
	4: game.ActionSwapFront,
	5: game.ActionSwapBatch,
}

func renderPieces(w io.Writer, title string, pieces []piece.Piece, capacity int) {
	fmt.Fprintf(w, "\n--- %s (%d/%d) ---\n", title, len(pieces), capacity)
	if len(pieces) == 0 {
		fmt.Fprintln(w, "(empty)")
		return
	}
	parts := make([]string, len(pieces))
	for i, p := range pieces {
		parts[i] = p.String()
	}
	fmt.Fprintln(w, strings.Join(parts, " "))
}

func renderState(w io.Writer, s *game.Session) {
	cfg := s.Config()
	fmt.Fprintln(w, rule)
	renderPieces(w, "NEXT PIECES", s.Queue(), cfg.QueueCapacity)
	renderPieces(w, "RESERVED (top first)", s.Reserved(), cfg.StackCapacity)
	fmt.Fprintln(w, rule)
}

func renderMenu(w io.Writer, batch int) {
	fmt.Fprintln(w, "\n========= ACTIONS =========")
	fmt.Fprintln(w, "1. Play piece")
	fmt.Fprintln(w, "2. Reserve piece")
	fmt.Fprintln(w, "3. Use reserved piece")
	fmt.Fprintln(w, "4. Swap front with reserve top")
	fmt.Fprintf(w, "5. Swap first %d with reserve top %d\n", batch, batch)
	fmt.Fprintln(w, "6. Show state")
	fmt.Fprintln(w, "0. Quit")
	fmt.Fprint(w, "===========================\nChoice: ")
}

// describe turns a successful outcome into the line shown to the player.
func describe(out game.Outcome) string {
	switch out.Action {
	case game.ActionPlay:
		return fmt.Sprintf("Played %s", out.Piece)
	case game.ActionReserve:
		return fmt.Sprintf("Reserved %s", out.Piece)
	case game.ActionUseReserved:
		return fmt.Sprintf("Used reserved %s", out.Piece)
	case game.ActionSwapFront:
		return "Swapped front piece with reserve top"
	default:
		return "Swapped batch"
	}
}

// run drives the menu loop until the player quits or in is exhausted.
func run(in io.Reader, w io.Writer, s *game.Session, logger *slog.Logger) error {
	scanner := bufio.NewScanner(in)
	renderState(w, s)
	for {
		renderMenu(w, s.Config().BatchSize)
		if !scanner.Scan() {
			fmt.Fprintln(w)
			return scanner.Err()
		}
		choice, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Fprintln(w, "\nInvalid option!")
			continue
		}
		switch choice {
		case 0:
			st := s.Stats()
			logger.Debug("session finished", "session", s.ID(), "played", st.Played,
				"reserved", st.Reserved, "used", st.Used, "failures", st.Failures)
			fmt.Fprintln(w, "\nLeaving the game...")
			return nil
		case 6:
			renderState(w, s)
			continue
		}
		action, ok := menu[choice]
		if !ok {
			fmt.Fprintln(w, "\nInvalid option!")
			continue
		}
		out, err := s.Do(action)
		if err != nil {
			logger.Debug("action rejected", "session", s.ID(), "action", action, "err", err)
			fmt.Fprintf(w, "\n%s\n", failureMessage(err))
			continue
		}
		fmt.Fprintf(w, "\n%s\n", describe(out))
		renderState(w, s)
	}
}

func failureMessage(err error) string {
	switch {
	case errors.Is(err, game.ErrEmptyQueue):
		return "The queue is empty."
	case errors.Is(err, game.ErrFullStack):
		return "The reserve is full. Use a reserved piece first."
	case errors.Is(err, game.ErrEmptyStack):
		return "There are no reserved pieces."
	case errors.Is(err, game.ErrInsufficientPieces):
		return "Not enough pieces in the queue and reserve for a batch swap."
	default:
		return err.Error()
	}
}

func loadConfig(path string, seed int64, queue, stack, batch int) (config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, err
		}
	}
	// Flags override the file; negative seed means the file's or a time-based one.
	if seed >= 0 {
		cfg.Seed = uint64(seed)
	} else if path == "" {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	if queue > 0 {
		cfg.QueueCapacity = queue
	}
	if stack > 0 {
		cfg.StackCapacity = stack
	}
	if batch > 0 {
		cfg.BatchSize = batch
	}
	return cfg, cfg.Validate()
}

func main() {
	configPath := flag.String("config", "", "Path to a YAML session config")
	seed := flag.Int64("seed", -1, "Seed for piece generation; negative picks one from the clock")
	queue := flag.Int("queue", 0, "Queue capacity (overrides config)")
	stack := flag.Int("stack", 0, "Reserve capacity (overrides config)")
	batch := flag.Int("batch", 0, "Batch swap size (overrides config)")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(*configPath, *seed, *queue, *stack, *batch)
	if err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}
	s, err := game.NewSession(cfg)
	if err != nil {
		logger.Error("starting session failed", "err", err)
		os.Exit(1)
	}
	logger.Debug("session started", "session", s.ID(), "seed", cfg.Seed,
		"queue", cfg.QueueCapacity, "stack", cfg.StackCapacity, "batch", cfg.BatchSize)

	fmt.Println("\n===========================================")
	fmt.Println("            PIECE QUEUE & RESERVE          ")
	fmt.Println("===========================================")

	if err := run(os.Stdin, os.Stdout, s, logger); err != nil {
		logger.Error("reading input failed", "err", err)
		os.Exit(1)
	}
}
