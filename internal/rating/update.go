package rating

import (
	"fmt"
	"math"
)

// #region update-function
// Update is a pure function that computes the next rating from the current one.
// Repair turns are a no-op; otherwise the score is 1 for correct and 0 for incorrect.
func Update(old int, ctx UpdateContext, config UpdateConfig) UpdateResult {
	if ctx.Repair {
		return UpdateResult{
			Old:      old,
			New:      old,
			Decision: Decision{Action: "no_op", Reason: "repair turn"},
		}
	}

	score := 0.0
	if ctx.Correct {
		score = 1.0
	}
	delta := int(math.Round(config.K * (score - 0.5)))

	next := old + delta
	if next < config.Floor {
		next = config.Floor
	}

	return UpdateResult{
		Old:   old,
		New:   next,
		Delta: delta,
		Decision: Decision{
			Action: "commit",
			Reason: fmt.Sprintf("turn %s: correct=%t delta=%+d", ctx.TurnID, ctx.Correct, delta),
		},
	}
}

// #endregion update-function
