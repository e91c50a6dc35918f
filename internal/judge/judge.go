package judge

import "fmt"

// #region judge
// Judge scores an answer to "does the current result match the one n turns back".
// A timed out turn is always incorrect; answer is ignored.
func Judge(history []HistoryItem, n int, answer, timedOut bool) (Verdict, error) {
	if n < 1 || len(history) < n+1 {
		return Verdict{}, fmt.Errorf("judge n=%d len=%d: %w", n, len(history), ErrInsufficientHistory)
	}

	current := history[len(history)-1]
	target := history[len(history)-1-n]
	isMatch := current.Result == target.Result

	v := Verdict{
		Target:   target,
		Current:  current,
		IsMatch:  isMatch,
		TimedOut: timedOut,
	}
	if timedOut {
		v.Reason = "timed out"
		return v, nil
	}
	v.Correct = answer == isMatch
	v.Reason = fmt.Sprintf("answered %t, match was %t", answer, isMatch)
	return v, nil
}

// #endregion judge
