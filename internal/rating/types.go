package rating

// #region constants

// Default is the rating assumed when nothing was persisted.
const Default = 1000

// #endregion constants

// #region update-context
// UpdateContext carries per-turn context into the pure update function.
type UpdateContext struct {
	TurnID  string
	Correct bool
	Repair  bool // repair turns never move the rating
}

// #endregion update-context

// #region decision
// Decision records what the update function decided.
type Decision struct {
	Action string // "commit" | "no_op"
	Reason string
}

// #endregion decision

// #region update-config
// UpdateConfig holds the fixed-K parameters of the rating update.
type UpdateConfig struct {
	K     float64 // score weight; delta = round(K * (score - 0.5))
	Floor int     // ratings never drop below this
}

// DefaultUpdateConfig returns K=10 with a floor of zero.
func DefaultUpdateConfig() UpdateConfig {
	return UpdateConfig{
		K:     10,
		Floor: 0,
	}
}

// #endregion update-config

// #region update-result
// UpdateResult bundles everything returned by Update().
type UpdateResult struct {
	Old      int
	New      int
	Delta    int // unclamped delta
	Decision Decision
}

// #endregion update-result
