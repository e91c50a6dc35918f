package puzzle

import (
	"math"
	"time"
)

// #region cost

var baseCost = map[Family]int{
	Comparison:  1,
	Opposition:  2,
	Temporal:    2,
	Hierarchy:   3,
	Conditional: 3,
	Causal:      3,
	Deictic:     4,
	Spatial:     5,
	Analogy:     5,
}

// negatedCost replaces the family cost of any negated stimulus.
const negatedCost = 4

// Complexity scores a stimulus for time budgeting.
func Complexity(s Stimulus) int {
	if s.Negated {
		return negatedCost
	}
	switch s.Family {
	case Causal:
		if s.Tier >= 3 {
			return 4
		}
	case Deictic:
		if v, ok := s.Visual.(DeicticVisual); ok && v.TimeFrame == Then {
			return 6
		}
	}
	return baseCost[s.Family]
}

// #endregion cost

// #region budget

// MinBudgetSeconds is the floor of every finite time budget.
const MinBudgetSeconds = 3

// TimeBudget is the answer window for a stimulus of the given cost. A non-positive
// baseSeconds means the timer is infinite and the budget is zero (none).
func TimeBudget(cost, baseSeconds, rating int) time.Duration {
	if baseSeconds <= 0 {
		return 0
	}
	bonus := math.Max(0, float64(rating-1000)/1000) * 2
	secs := math.Max(MinBudgetSeconds, float64(baseSeconds)+float64(cost-1)*1.5-bonus)
	return time.Duration(secs * float64(time.Second))
}

// #endregion budget
