package puzzle

import (
	"fmt"
	"strings"

	"github.com/danielpatrickdp/cipher-nback/internal/random"
)

// #region search-bound

// SearchBound caps the random trial sequences tried by constrained generators.
const SearchBound = 200

// #endregion search-bound

// #region causal-scenario

// causalScenario is an operator sequence plus the start state it runs from.
// Start is "DORMANT" for the gate/pass automaton and a colour for viral mutation.
type causalScenario struct {
	start string
	ops   []string
}

const dormant = "DORMANT"

// simulateCausal runs the automaton for the tier and returns the final result label.
//
// Tier 2: state starts off; TRIGGER sets on, BLOCK sets off, PASS keeps, INVERT flips.
// Tier 3: colour state with a gate that starts open; TRIGGER through an open gate
// flips the colour, BLOCK closes the gate, PASS reopens it.
func simulateCausal(tier int, sc causalScenario) string {
	if tier >= 3 {
		colour, open := sc.start, true
		for _, op := range sc.ops {
			switch op {
			case Trigger:
				if open {
					colour = other([]string{Red, Blue}, colour)
				}
			case Block:
				open = false
			case labelPass:
				open = true
			}
		}
		return colour
	}
	on := false
	for _, op := range sc.ops {
		switch op {
		case Trigger:
			on = true
		case Block:
			on = false
		case labelInvert:
			on = !on
		}
	}
	if on {
		return Trigger
	}
	return Block
}

// causalAcceptable rejects trivial sequences so the search has something to solve.
func causalAcceptable(tier int, ops []string) bool {
	if tier >= 3 {
		var trig, blk bool
		for _, op := range ops {
			trig = trig || op == Trigger
			blk = blk || op == Block
		}
		return trig && blk
	}
	last := ops[len(ops)-1]
	if last == Trigger || last == Block {
		return false
	}
	distinct := map[string]struct{}{}
	for _, op := range ops {
		distinct[op] = struct{}{}
	}
	return len(distinct) >= 2
}

// causalFallback is the hand-authored scenario per target. It always reproduces
// the target under simulateCausal.
func causalFallback(tier int, target string) causalScenario {
	if tier >= 3 {
		start := Blue
		if target == Blue {
			start = Red
		}
		return causalScenario{start: start, ops: []string{Trigger, Block, Trigger, labelPass}}
	}
	if target == Trigger {
		return causalScenario{start: dormant, ops: []string{Trigger, Block, labelInvert}}
	}
	return causalScenario{start: dormant, ops: []string{Trigger, labelPass, labelInvert}}
}

// solveCausal searches up to bound random sequences for one producing target.
func solveCausal(src random.Source, tier int, target, start string, bound int) (causalScenario, bool) {
	alphabet := []string{Trigger, Block, labelPass, labelInvert}
	length := 3
	if tier >= 3 {
		alphabet = []string{Trigger, Block, labelPass}
		length = 4
	}
	for range bound {
		ops := make([]string, length)
		for i := range ops {
			ops[i] = random.Choice(src, alphabet)
		}
		sc := causalScenario{start: start, ops: ops}
		if causalAcceptable(tier, ops) && simulateCausal(tier, sc) == target {
			return sc, false
		}
	}
	return causalFallback(tier, target), true
}

// #endregion causal-scenario

// #region causal

func generateCausal(src random.Source, prev string, force bool, tier int) Output {
	vocab := Vocabulary(Causal, tier)
	result := pickResult(src, vocab, prev, force)

	alloc := random.NewAllocator(src)
	cb := newCipher(src, alloc, 1)

	if tier == 1 {
		cb.define(Trigger, Block)
		op := cb.use(result)
		return Output{
			Stimulus: Stimulus{
				Family:    Causal,
				Tier:      tier,
				Cipher:    cb.entries(),
				Placement: placement(src),
				Visual:    CausalVisual{Start: dormant, Operators: []string{op}},
				Query:     "Does the signal fire or stay blocked?",
				Proof:     fmt.Sprintf("%s => %s", op, result),
			},
			Result: result,
		}
	}

	start := dormant
	if tier >= 3 {
		start = random.Choice(src, []string{Red, Blue})
	}
	sc, fellBack := solveCausal(src, tier, result, start, SearchBound)

	if tier >= 3 {
		cb.define(Trigger, Block, labelPass, Red, Blue)
	} else {
		cb.define(Trigger, Block, labelPass, labelInvert)
	}
	ops := make([]string, len(sc.ops))
	for i, op := range sc.ops {
		ops[i] = cb.use(op)
	}

	st := Stimulus{
		Family:    Causal,
		Tier:      tier,
		Placement: placement(src),
		Query:     "Does the signal fire or stay blocked?",
		Proof:     fmt.Sprintf("%s: %s => %s", sc.start, strings.Join(sc.ops, " > "), result),
	}
	visualStart := dormant
	if tier >= 3 {
		visualStart = cb.use(sc.start)
		st.ContextColors = []string{sc.start}
		st.Query = "Which colour leaves the pipeline?"
	}
	st.Cipher = cb.entries()
	st.Visual = CausalVisual{Start: visualStart, Operators: ops}

	return Output{Stimulus: st, Result: result, UsedFallback: fellBack}
}

// #endregion causal
