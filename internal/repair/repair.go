package repair

import (
	"github.com/danielpatrickdp/cipher-nback/internal/puzzle"
	"github.com/danielpatrickdp/cipher-nback/internal/random"
)

// #region failures
// RecordFailure advances the consecutive-miss counter of normal judged turns.
func RecordFailure(failures int, correct bool) int {
	if correct {
		return 0
	}
	return failures + 1
}

// ShouldEnter reports whether the miss streak has reached the threshold.
func ShouldEnter(failures int, cfg Config) bool {
	return failures >= cfg.FailureThreshold
}

// Enter locks repair mode onto the family of the failing turn.
func Enter(family puzzle.Family) State {
	return State{Active: true, LockedFamily: family}
}

// #endregion failures

// #region claim
// Claim decides what a repair turn displays: the true result with probability
// cfg.ClaimProbability, otherwise a distractor from the rest of the vocabulary.
func Claim(src random.Source, vocab []string, trueResult string, cfg Config) (shown string, isTrue bool) {
	distractors := random.Without(vocab, trueResult)
	if len(distractors) == 0 || random.Bool(src, cfg.ClaimProbability) {
		return trueResult, true
	}
	return random.Choice(src, distractors), false
}

// Score judges a single-step answer. A timeout is always incorrect.
func Score(answer, displayedIsTrue, timedOut bool) bool {
	return !timedOut && answer == displayedIsTrue
}

// #endregion claim

// #region successes
// RecordSuccess advances the repair streak. A miss resets it; reaching the
// threshold returns the zero State and TransitionExit.
func RecordSuccess(st State, correct bool, cfg Config) (State, Transition) {
	if !st.Active {
		return st, TransitionNone
	}
	next := st
	next.TargetResult = ""
	if !correct {
		next.ConsecutiveSuccesses = 0
		return next, TransitionNone
	}
	next.ConsecutiveSuccesses++
	if next.ConsecutiveSuccesses >= cfg.SuccessThreshold {
		return State{}, TransitionExit
	}
	return next, TransitionNone
}

// #endregion successes
