package puzzle

import (
	"fmt"
	"strings"

	"github.com/danielpatrickdp/cipher-nback/internal/random"
)

// #region opposition

// generateOpposition links tier+2 items by SAME/OPPOSITE relations whose parity
// decides the result, or by SAME links around exactly one DIFFERENT link.
func generateOpposition(src random.Source, prev string, force bool, tier int) Output {
	vocab := Vocabulary(Opposition, tier)
	result := pickResult(src, vocab, prev, force)

	alloc := random.NewAllocator(src)
	cb := newCipher(src, alloc, tier)
	cb.define(Same, Opposite)
	if result == Different || tier >= 2 {
		cb.define(Different)
	}

	links := tier + 1
	rels := oppositionLinks(src, links, result)
	items := alloc.Codes(links + 1)

	premises := make([]Premise, 0, links)
	steps := make([]string, 0, links)
	for i, r := range rels {
		a, b := items[i], items[i+1]
		steps = append(steps, r)
		// symmetric relations: converse phrasing keeps the symbol
		if tier >= 2 && random.Bool(src, 0.5) {
			a, b = b, a
		}
		premises = append(premises, Premise{Left: a, Symbol: cb.use(r), Right: b})
	}
	if tier >= 2 {
		random.Shuffle(src, premises)
	}

	ql, qr := items[0], items[links]
	if tier >= 2 && random.Bool(src, 0.5) {
		ql, qr = qr, ql
	}

	return Output{
		Stimulus: Stimulus{
			Family:    Opposition,
			Tier:      tier,
			Cipher:    cb.entries(),
			Placement: placement(src),
			Visual: OppositionVisual{ChainView{
				Premises:   premises,
				QueryLeft:  ql,
				QueryRight: qr,
			}},
			Query: fmt.Sprintf("Are %s and %s the same, opposite or different?", ql, qr),
			Proof: fmt.Sprintf("%s => %s %s %s", strings.Join(steps, " o "), ql, result, qr),
		},
		Result: result,
	}
}

// oppositionLinks returns n link relations composing to result.
func oppositionLinks(src random.Source, n int, result string) []string {
	rels := make([]string, n)
	if result == Different {
		for i := range rels {
			rels[i] = Same
		}
		rels[src.IntN(n)] = Different
		return rels
	}
	odd := 0
	for i := range n - 1 {
		rels[i] = random.Choice(src, []string{Same, Opposite})
		if rels[i] == Opposite {
			odd ^= 1
		}
	}
	want := 0
	if result == Opposite {
		want = 1
	}
	rels[n-1] = Same
	if odd != want {
		rels[n-1] = Opposite
	}
	return rels
}

// composeOpposition folds link relations into the end-to-end relation.
func composeOpposition(rels []string) string {
	odd := false
	for _, r := range rels {
		switch r {
		case Different:
			return Different
		case Opposite:
			odd = !odd
		}
	}
	if odd {
		return Opposite
	}
	return Same
}

// #endregion opposition
