package logging

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// #region turn-log
// TurnLog is the in-memory log stream of a session. Entries are kept in append
// order and returned newest first.
type TurnLog struct {
	entries []LogEntry
}

// Append stamps the entry with an ID and timestamp when missing and stores it.
func (l *TurnLog) Append(e LogEntry) LogEntry {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	l.entries = append(l.entries, e)
	return e
}

// Entries returns a newest-first copy of the log.
func (l *TurnLog) Entries() []LogEntry {
	out := slices.Clone(l.entries)
	slices.Reverse(out)
	return out
}

// Latest returns the most recent entry.
func (l *TurnLog) Latest() (LogEntry, bool) {
	if len(l.entries) == 0 {
		return LogEntry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Len returns the number of entries.
func (l *TurnLog) Len() int { return len(l.entries) }

// Clear drops every entry.
func (l *TurnLog) Clear() { l.entries = nil }

// Stats summarizes the log.
func (l *TurnLog) Stats() Stats {
	return Summarize(l.entries)
}

// #endregion turn-log

// #region summarize
// Summarize counts outcomes over entries in any order.
func Summarize(entries []LogEntry) Stats {
	var s Stats
	for _, e := range entries {
		s.Turns++
		if e.TimedOut {
			s.TimedOut++
		}
		switch {
		case e.Repair:
			s.Repair++
		case e.Warmup:
		default:
			s.Judged++
			if e.Correct {
				s.Correct++
			}
		}
	}
	if s.Judged > 0 {
		s.Accuracy = float64(s.Correct) / float64(s.Judged)
	}
	return s
}

// #endregion summarize
