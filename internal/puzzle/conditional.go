package puzzle

import (
	"fmt"
	"strings"

	"github.com/danielpatrickdp/cipher-nback/internal/random"
)

// #region conditional

// conditionalCase is one assignment of fact states and context colour.
type conditionalCase struct {
	on      []bool
	context string
}

// evalCondition applies the operator to the facts and, when want is set, requires
// the context colour to match it.
func evalCondition(c conditionalCase, op, want string) bool {
	holds := c.on[0]
	for _, v := range c.on[1:] {
		if op == labelAnd {
			holds = holds && v
		} else {
			holds = holds || v
		}
	}
	if want != "" {
		holds = holds && c.context == want
	}
	return holds
}

// enumerateCases lists every fact assignment, crossed with both context colours
// when withContext is set.
func enumerateCases(facts int, withContext bool) []conditionalCase {
	contexts := []string{""}
	if withContext {
		contexts = []string{Red, Blue}
	}
	var out []conditionalCase
	for mask := range 1 << facts {
		for _, ctx := range contexts {
			on := make([]bool, facts)
			for i := range on {
				on[i] = mask&(1<<i) != 0
			}
			out = append(out, conditionalCase{on: on, context: ctx})
		}
	}
	return out
}

// generateConditional builds "IF facts [op] [context is colour] THEN colour ELSE colour".
func generateConditional(src random.Source, prev string, force bool, tier int) Output {
	vocab := Vocabulary(Conditional, tier)
	result := pickResult(src, vocab, prev, force)

	thenColour := random.Choice(src, vocab)
	elseColour := other(vocab, thenColour)
	wantTrue := result == thenColour

	facts, op, want := 1, "", ""
	if tier >= 2 {
		facts = 2
		op = random.Choice(src, []string{labelAnd, labelOr})
	}
	if tier >= 3 {
		want = random.Choice(src, vocab)
	}

	var matching []conditionalCase
	for _, c := range enumerateCases(facts, tier >= 3) {
		if evalCondition(c, op, want) == wantTrue {
			matching = append(matching, c)
		}
	}
	chosen := random.Choice(src, matching)

	alloc := random.NewAllocator(src)
	cb := newCipher(src, alloc, 1)
	cb.define(labelOn, labelOff, Red, Blue)

	names := alloc.Codes(facts)
	shown := make([]Fact, facts)
	trace := make([]string, facts)
	for i, name := range names {
		state := labelOff
		if chosen.on[i] {
			state = labelOn
		}
		shown[i] = Fact{Name: name, State: cb.use(state)}
		trace[i] = name + "=" + state
	}

	visual := ConditionalVisual{
		Facts: shown,
		Then:  cb.use(thenColour),
		Else:  cb.use(elseColour),
	}
	if op != "" {
		visual.Operator = cb.use(op)
	}
	st := Stimulus{
		Family:    Conditional,
		Tier:      tier,
		Placement: placement(src),
		Query:     "Which colour does the rule produce?",
	}
	cond := strings.Join(trace, " "+op+" ")
	if want != "" {
		visual.Context = cb.use(want)
		st.ContextColors = []string{chosen.context}
		cond += fmt.Sprintf(" AND context=%s (is %s)", want, chosen.context)
	}
	st.Cipher = cb.entries()
	st.Visual = visual
	st.Proof = fmt.Sprintf("IF %s => %t => %s", cond, wantTrue, result)

	return Output{Stimulus: st, Result: result}
}

// #endregion conditional
