package puzzle

import (
	"fmt"
	"strings"

	"github.com/danielpatrickdp/cipher-nback/internal/random"
)

// #region comparison

func generateComparison(src random.Source, prev string, force bool, tier int) Output {
	return generateChain(src, prev, force, tier, Comparison)
}

// #endregion comparison

// #region temporal

func generateTemporal(src random.Source, prev string, force bool, tier int) Output {
	return generateChain(src, prev, force, tier, Temporal)
}

// #endregion temporal

// #region chain

// generateChain builds a linear order of tier+2 items in which every link has the
// same direction, so the relation between the two ends is determined.
// At tier 3 the temporal family adds an item that happens simultaneously with an
// inner item and queries it in place of the first end.
func generateChain(src random.Source, prev string, force bool, tier int, family Family) Output {
	vocab := Vocabulary(family, tier)
	result := pickResult(src, vocab, prev, force)

	alloc := random.NewAllocator(src)
	cb := newCipher(src, alloc, tier)
	cb.define(vocab...)
	if family == Temporal && tier >= 3 {
		cb.define(labelSimul)
	}

	links := tier + 1
	items := alloc.Codes(links + 1)

	reversed := tier >= 2 && random.Bool(src, 0.5)
	rel := result
	if reversed {
		rel = other(vocab, result)
	}

	premises := make([]Premise, 0, links+1)
	steps := make([]string, 0, links+1)
	for i := range links {
		a, b, r := items[i], items[i+1], rel
		steps = append(steps, fmt.Sprintf("%s %s %s", a, r, b))
		if tier >= 2 && random.Bool(src, 0.5) {
			a, b, r = b, a, other(vocab, r)
		}
		premises = append(premises, Premise{Left: a, Symbol: cb.use(r), Right: b})
	}

	first, last := items[0], items[links]
	if family == Temporal && tier >= 3 {
		inner := items[random.IntRange(src, 1, links-1)]
		twin := alloc.Code()
		premises = append(premises, Premise{Left: twin, Symbol: cb.use(labelSimul), Right: inner})
		steps = append(steps, fmt.Sprintf("%s %s %s", twin, labelSimul, inner))
		first = twin
	}

	ql, qr := first, last
	if reversed {
		ql, qr = last, first
	}
	if tier >= 2 {
		random.Shuffle(src, premises)
	}

	view := ChainView{Premises: premises, QueryLeft: ql, QueryRight: qr}
	var visual Visual = ComparisonVisual{view}
	query := fmt.Sprintf("Is %s greater or lesser than %s?", ql, qr)
	if family == Temporal {
		visual = TemporalVisual{view}
		query = fmt.Sprintf("Does %s happen before or after %s?", ql, qr)
	}

	return Output{
		Stimulus: Stimulus{
			Family:    family,
			Tier:      tier,
			Cipher:    cb.entries(),
			Placement: placement(src),
			Visual:    visual,
			Query:     query,
			Proof:     strings.Join(steps, "; ") + fmt.Sprintf(" => %s %s %s", ql, result, qr),
		},
		Result: result,
	}
}

// #endregion chain
