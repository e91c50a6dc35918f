package judge

import (
	"errors"

	"github.com/danielpatrickdp/cipher-nback/internal/puzzle"
)

// #region history-item
// HistoryItem is one entry of the rolling N-back history.
type HistoryItem struct {
	Result   string          `json:"result"`
	Stimulus puzzle.Stimulus `json:"stimulus"`
}

// #endregion history-item

// #region verdict
// Verdict is the outcome of judging one answer against the history.
type Verdict struct {
	Target   HistoryItem
	Current  HistoryItem
	IsMatch  bool // current result equals the result N turns back
	Correct  bool
	TimedOut bool
	Reason   string
}

// ErrInsufficientHistory is returned when the history has no item N turns back.
var ErrInsufficientHistory = errors.New("history shorter than n+1")

// #endregion verdict
