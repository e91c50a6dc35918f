package rating

// #region tier

// Tier thresholds: below TierTwoAt is tier 1, below TierThreeAt is tier 2.
const (
	TierTwoAt   = 1200
	TierThreeAt = 1500
)

// Tier maps a rating to a difficulty tier in 1..3.
func Tier(r int) int {
	switch {
	case r < TierTwoAt:
		return 1
	case r < TierThreeAt:
		return 2
	default:
		return 3
	}
}

// #endregion tier
