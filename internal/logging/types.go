package logging

import (
	"time"

	"github.com/danielpatrickdp/cipher-nback/internal/judge"
)

// #region log-entry
// LogEntry is the review record of one finished turn.
type LogEntry struct {
	ID           string             `json:"id"`
	SessionID    string             `json:"session_id"`
	Turn         int                `json:"turn"`
	Timestamp    time.Time          `json:"timestamp"`
	Rating       int                `json:"rating"` // active rating after the turn
	Target       *judge.HistoryItem `json:"target,omitempty"`
	Current      judge.HistoryItem  `json:"current"`
	Answer       *bool              `json:"answer,omitempty"` // nil on timeout
	IsMatch      bool               `json:"is_match"`
	Correct      bool               `json:"correct"`
	Warmup       bool               `json:"warmup"` // not judged
	ReactionTime time.Duration      `json:"reaction_time"`
	TimedOut     bool               `json:"timed_out"`

	// Repair turns are judged against RepairClaim instead of the history.
	Repair      bool   `json:"repair"`
	RepairClaim string `json:"repair_claim,omitempty"`
}

// #endregion log-entry

// #region stats
// Stats summarizes a log.
type Stats struct {
	Turns    int     `json:"turns"`
	Judged   int     `json:"judged"`
	Correct  int     `json:"correct"`
	TimedOut int     `json:"timed_out"`
	Repair   int     `json:"repair"`
	Accuracy float64 `json:"accuracy"` // correct / judged, repair turns excluded
}

// #endregion stats
