package replay

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/danielpatrickdp/cipher-nback/internal/config"
	"github.com/danielpatrickdp/cipher-nback/internal/puzzle"
	"github.com/danielpatrickdp/cipher-nback/internal/random"
	"github.com/danielpatrickdp/cipher-nback/internal/session"
	"github.com/danielpatrickdp/cipher-nback/internal/state"
)

// #region types

// Result actions.
const (
	ActionWarmup          = "warmup"
	ActionCorrect         = "correct"
	ActionIncorrect       = "incorrect"
	ActionTimeout         = "timeout"
	ActionRepairCorrect   = "repair_correct"
	ActionRepairIncorrect = "repair_incorrect"
)

// Result captures the outcome of one scripted turn.
type Result struct {
	Turn        int
	Family      puzzle.Family
	Phase       session.Phase
	BlockSwitch bool
	Action      string
	Reason      string // repair transitions, when any
	Rating      int    // active rating after the turn
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	TotalTurns      int
	Warmups         int
	Correct         int
	Incorrect       int
	Timeouts        int
	RepairTurns     int
	BlockSwitches   int
	FinalRating     int
	PersistedRating int
}

// #endregion types

// #region memory-store

// memoryStore is an in-memory session.Store seeded from the fixture.
type memoryStore struct {
	rating int
	cfg    config.GameConfig
}

func (m *memoryStore) LoadRating() (int, error)               { return m.rating, nil }
func (m *memoryStore) SaveRating(r int) error                 { m.rating = r; return nil }
func (m *memoryStore) LoadConfig() (config.GameConfig, error) { return m.cfg, nil }
func (m *memoryStore) SaveConfig(c config.GameConfig) error   { m.cfg = c; return nil }

var _ session.Store = (*memoryStore)(nil)
var _ session.Store = (*state.Store)(nil)

// #endregion memory-store

// #region replay

// Replay drives a fresh engine through the fixture's script. It runs entirely
// in memory on a fixed clock, so the same fixture always yields the same results.
func Replay(f *Fixture, logger *slog.Logger) ([]Result, *session.Engine, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	store := &memoryStore{rating: f.startRating(), cfg: f.Config}
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	e := session.New(session.Deps{
		Store:   store,
		Source:  random.New(f.Seed),
		Logger:  logger,
		Clock:   func() time.Time { clock = clock.Add(time.Second); return clock },
		Options: f.ToOptions(),
	})

	results := make([]Result, 0, len(f.Script))
	for i, step := range f.Script {
		var (
			turn session.Turn
			err  error
		)
		if i == 0 {
			turn, err = e.Start()
		} else {
			turn, err = e.NextTurn()
		}
		if err != nil {
			return results, e, fmt.Errorf("step %d: %w", i, err)
		}

		wasRepair := e.Repair().Active
		entry, err := e.SubmitAnswer(answerFor(e, step), step == StepTimeout)
		if err != nil {
			return results, e, fmt.Errorf("step %d: %w", i, err)
		}

		r := Result{
			Turn:        turn.Number,
			Family:      turn.Stimulus.Family,
			Phase:       turn.Phase,
			BlockSwitch: turn.BlockSwitch,
			Action:      actionOf(entry.Warmup, entry.Repair, entry.Correct, entry.TimedOut),
			Rating:      entry.Rating,
		}
		switch nowRepair := e.Repair().Active; {
		case !wasRepair && nowRepair:
			r.Reason = "repair entered"
		case wasRepair && !nowRepair:
			r.Reason = "repair exited"
		}
		results = append(results, r)
	}
	return results, e, nil
}

// answerFor resolves a scripted step against the pending turn.
func answerFor(e *session.Engine, step Step) bool {
	switch step {
	case StepMatch:
		return true
	case StepNoMatch, StepTimeout:
		return false
	}
	want, ok := e.Expected()
	if !ok {
		// warmup: any answer is accepted
		return step == StepWrong
	}
	if step == StepWrong {
		return !want
	}
	return want
}

func actionOf(warmup, repair, correct, timedOut bool) string {
	switch {
	case warmup:
		return ActionWarmup
	case repair && correct:
		return ActionRepairCorrect
	case repair:
		return ActionRepairIncorrect
	case timedOut:
		return ActionTimeout
	case correct:
		return ActionCorrect
	default:
		return ActionIncorrect
	}
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []Result, e *session.Engine) Summary {
	s := Summary{TotalTurns: len(results)}
	if e != nil {
		s.FinalRating = e.Rating()
		s.PersistedRating = e.PersistedRating()
	}
	for _, r := range results {
		if r.BlockSwitch {
			s.BlockSwitches++
		}
		switch r.Action {
		case ActionWarmup:
			s.Warmups++
		case ActionCorrect:
			s.Correct++
		case ActionIncorrect:
			s.Incorrect++
		case ActionTimeout:
			s.Timeouts++
		case ActionRepairCorrect, ActionRepairIncorrect:
			s.RepairTurns++
		}
	}
	return s
}

// #endregion replay
