package session

import (
	"errors"
	"log/slog"
	"time"

	"github.com/danielpatrickdp/cipher-nback/internal/config"
	"github.com/danielpatrickdp/cipher-nback/internal/puzzle"
	"github.com/danielpatrickdp/cipher-nback/internal/random"
	"github.com/danielpatrickdp/cipher-nback/internal/rating"
	"github.com/danielpatrickdp/cipher-nback/internal/repair"
)

// #region phase

// Phase is the session state machine's state.
type Phase string

const (
	PhaseIdle     Phase = "IDLE"
	PhaseWarmup   Phase = "WARMUP"
	PhasePlaying  Phase = "PLAYING"
	PhaseFeedback Phase = "FEEDBACK"
)

// PhaseFor picks the phase of a normal turn from the number of history items
// before it. A block switch passes zero.
func PhaseFor(effectiveLen, n int) Phase {
	if effectiveLen >= n {
		return PhasePlaying
	}
	return PhaseWarmup
}

// #endregion phase

// #region turn

// Turn is the pending stimulus as shown to the player. The ground-truth result is
// withheld until the answer is logged.
type Turn struct {
	Number      int             `json:"number"`
	Stimulus    puzzle.Stimulus `json:"stimulus"`
	Phase       Phase           `json:"phase"`
	Budget      time.Duration   `json:"budget"` // zero: no time limit
	BlockSwitch bool            `json:"block_switch"`
	StartedAt   time.Time       `json:"started_at"`

	// Repair turns display a single claim to confirm or reject.
	Repair bool   `json:"repair"`
	Claim  string `json:"claim,omitempty"`
}

// #endregion turn

// #region deps

// Store is the persisted state collaborator.
type Store interface {
	LoadRating() (int, error)
	SaveRating(r int) error
	LoadConfig() (config.GameConfig, error)
	SaveConfig(cfg config.GameConfig) error
}

// Options tunes the engine.
type Options struct {
	MatchProbability float64 // chance a judged turn is forced to match
	Rating           rating.UpdateConfig
	Repair           repair.Config
}

// DefaultOptions returns a 0.3 match rate, K=10 and the default repair thresholds.
func DefaultOptions() Options {
	return Options{
		MatchProbability: 0.3,
		Rating:           rating.DefaultUpdateConfig(),
		Repair:           repair.DefaultConfig(),
	}
}

// Deps are the engine's collaborators. Nil Logger and Clock get defaults.
type Deps struct {
	Store   Store
	Source  random.Source
	Logger  *slog.Logger
	Clock   func() time.Time
	Options Options
}

// #endregion deps

// #region errors

var (
	// ErrNoActiveTurn is returned for answers with no pending turn.
	ErrNoActiveTurn = errors.New("no active turn")
	// ErrWrongPhase is returned when an operation is not allowed in the current phase.
	ErrWrongPhase = errors.New("operation not allowed in this phase")
)

// #endregion errors
