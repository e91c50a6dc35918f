package schedule

import (
	"github.com/danielpatrickdp/cipher-nback/internal/puzzle"
	"github.com/danielpatrickdp/cipher-nback/internal/random"
)

// #region state
// State is the block scheduler's carried state. The zero value means no block has
// run yet.
type State struct {
	Active    puzzle.Family   `json:"active"`
	Remaining int             `json:"remaining"`
	Bag       []puzzle.Family `json:"bag"`
}

// RunLength bounds: a block lasts nBack*3 plus a uniform extra in [MinExtra, MaxExtra].
const (
	MinExtra = 3
	MaxExtra = 8
)

// #endregion state

// #region next
// Next consumes one turn and reports whether it opens a new block. The input state
// is not modified.
func Next(src random.Source, st State, nBack int) (State, bool) {
	next := State{
		Active:    st.Active,
		Remaining: st.Remaining,
		Bag:       append([]puzzle.Family(nil), st.Bag...),
	}
	switched := false

	if next.Remaining <= 0 {
		if len(next.Bag) == 0 {
			next.Bag = refill(src, st.Active)
		}
		next.Active = next.Bag[0]
		next.Bag = next.Bag[1:]
		next.Remaining = RunLength(src, nBack)
		switched = true
	}

	next.Remaining--
	return next, switched
}

// RunLength draws the length of a fresh block.
func RunLength(src random.Source, nBack int) int {
	return nBack*3 + random.IntRange(src, MinExtra, MaxExtra)
}

// refill returns a fresh permutation of every family whose head differs from last.
func refill(src random.Source, last puzzle.Family) []puzzle.Family {
	bag := random.Shuffled(src, puzzle.Families)
	if bag[0] == last {
		bag = append(bag[1:], bag[0])
	}
	return bag
}

// #endregion next
