package repair

import "github.com/danielpatrickdp/cipher-nback/internal/puzzle"

// #region state
// State is the repair-mode controller's state. The zero value is inactive.
type State struct {
	Active               bool          `json:"active"`
	LockedFamily         puzzle.Family `json:"locked_family,omitempty"`
	ConsecutiveSuccesses int           `json:"consecutive_successes"`
	TargetResult         string        `json:"target_result,omitempty"` // true result of the pending repair turn
}

// #endregion state

// #region config
// Config holds the repair thresholds.
type Config struct {
	FailureThreshold int     // consecutive normal misses that enter repair
	SuccessThreshold int     // consecutive repair hits that exit
	ClaimProbability float64 // chance the displayed claim is the true result
}

// DefaultConfig returns three misses in, three hits out and a fair claim coin.
func DefaultConfig() Config {
	return Config{
		FailureThreshold: 3,
		SuccessThreshold: 3,
		ClaimProbability: 0.5,
	}
}

// #endregion config

// #region transition
// Transition names a repair-mode edge for logging and metrics.
type Transition string

const (
	TransitionNone  Transition = ""
	TransitionEnter Transition = "enter"
	TransitionExit  Transition = "exit"
)

// #endregion transition
