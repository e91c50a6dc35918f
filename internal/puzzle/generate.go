package puzzle

import (
	"fmt"

	"github.com/danielpatrickdp/cipher-nback/internal/random"
)

// #region registry

// Generator produces a stimulus for one family. prev is the result the new turn
// is compared against ("" when there is none); force asks for prev to be reused.
type Generator func(src random.Source, prev string, force bool, tier int) Output

var registry = map[Family]Generator{
	Comparison:  generateComparison,
	Opposition:  generateOpposition,
	Hierarchy:   generateHierarchy,
	Temporal:    generateTemporal,
	Causal:      generateCausal,
	Spatial:     generateSpatial,
	Deictic:     generateDeictic,
	Conditional: generateConditional,
	Analogy:     generateAnalogy,
}

// Generate runs the family's generator and the negation modifier.
func Generate(src random.Source, family Family, prev string, force bool, tier int) (Output, error) {
	gen, ok := registry[family]
	if !ok {
		return Output{}, fmt.Errorf("generate %q: %w", family, ErrUnknownFamily)
	}
	if tier < 1 || tier > 3 {
		return Output{}, fmt.Errorf("generate %s: tier %d out of range", family, tier)
	}

	// A negated turn is generated against the inverted prev so that match forcing
	// still holds for the final result.
	negate := tier >= 3 && random.Bool(src, NegationProbability)
	genPrev := prev
	if inv, ok := Inverse(prev); negate && ok && InVocabulary(family, tier, inv) {
		genPrev = inv
	}
	out := gen(src, genPrev, force, tier)
	if negate {
		out, _ = Negate(src, out)
	}
	if err := out.Stimulus.Validate(); err != nil {
		return Output{}, fmt.Errorf("generate %s tier %d: %w", family, tier, err)
	}
	return out, nil
}

// #endregion registry
