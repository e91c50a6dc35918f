package puzzle

import (
	"fmt"
	"strings"

	"github.com/danielpatrickdp/cipher-nback/internal/random"
)

// #region analogy

// pairRelations is the relation set pairs are drawn from at a tier.
func pairRelations(tier int) []string {
	if tier >= 3 {
		return []string{Same, Opposite, Greater, Lesser}
	}
	return []string{Same, Opposite}
}

// generateAnalogy shows two pairs and asks whether they stand in the same relation.
// From tier 2 each pair relation is only implied through a middle item.
func generateAnalogy(src random.Source, prev string, force bool, tier int) Output {
	vocab := Vocabulary(Analogy, tier)
	result := pickResult(src, vocab, prev, force)

	rels := pairRelations(tier)
	first := random.Choice(src, rels)
	second := first
	if result == NonAnalogous {
		second = random.Choice(src, random.Without(rels, first))
	}

	alloc := random.NewAllocator(src)
	cb := newCipher(src, alloc, tier)
	cb.define(rels...)

	var pairs [2]PairView
	trace := make([]string, 2)
	for i, rel := range []string{first, second} {
		pairs[i], trace[i] = buildPair(src, alloc, cb, tier, rel)
	}

	return Output{
		Stimulus: Stimulus{
			Family:    Analogy,
			Tier:      tier,
			Cipher:    cb.entries(),
			Placement: placement(src),
			Visual:    AnalogyVisual{Pairs: pairs},
			Query: fmt.Sprintf("Is %s:%s like %s:%s?",
				pairs[0].Left, pairs[0].Right, pairs[1].Left, pairs[1].Right),
			Proof: fmt.Sprintf("%s => %s", strings.Join(trace, " | "), result),
		},
		Result: result,
	}
}

// buildPair allocates a pair whose end-to-end relation is rel.
func buildPair(src random.Source, alloc *random.Allocator, cb *cipherBuilder, tier int, rel string) (PairView, string) {
	if tier == 1 {
		a, b := alloc.Code(), alloc.Code()
		return PairView{
			Left:  a,
			Right: b,
			Links: []Premise{{Left: a, Symbol: cb.use(rel), Right: b}},
		}, fmt.Sprintf("%s %s %s", a, rel, b)
	}

	items := alloc.Codes(3)
	var links []string
	switch rel {
	case Greater, Lesser:
		links = []string{rel, rel}
	default:
		links = oppositionLinks(src, 2, rel)
	}
	ordered := []string{Greater, Lesser}
	premises := make([]Premise, 2)
	for i, l := range links {
		a, b, r := items[i], items[i+1], l
		if random.Bool(src, 0.5) {
			a, b = b, a
			if r == Greater || r == Lesser {
				r = other(ordered, r)
			}
		}
		premises[i] = Premise{Left: a, Symbol: cb.use(r), Right: b}
	}
	random.Shuffle(src, premises)
	return PairView{Left: items[0], Right: items[2], Links: premises},
		fmt.Sprintf("%s %s %s via %s (%s)", items[0], rel, items[2], items[1], strings.Join(links, ","))
}

// #endregion analogy
