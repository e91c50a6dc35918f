package puzzle

import (
	"errors"
	"fmt"
)

// #region family

// Family tags one of the nine relational-logic puzzle families.
type Family string

const (
	Comparison  Family = "COMPARISON"
	Opposition  Family = "OPPOSITION"
	Hierarchy   Family = "HIERARCHY"
	Temporal    Family = "TEMPORAL"
	Causal      Family = "CAUSAL"
	Spatial     Family = "SPATIAL"
	Deictic     Family = "DEICTIC"
	Conditional Family = "CONDITIONAL"
	Analogy     Family = "ANALOGY"
)

// Families lists every family in canonical order.
var Families = []Family{
	Comparison, Opposition, Hierarchy, Temporal, Causal,
	Spatial, Deictic, Conditional, Analogy,
}

// ParseFamily resolves a tag to a Family.
func ParseFamily(s string) (Family, bool) {
	for _, f := range Families {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// #endregion family

// #region placement

// Placement says on which side the cipher dictionary is drawn. Cosmetic only.
type Placement string

const (
	PlaceLeft  Placement = "LEFT"
	PlaceRight Placement = "RIGHT"
)

// #endregion placement

// #region stimulus

// CipherEntry maps one opaque symbol to its semantic label.
type CipherEntry struct {
	Symbol  string `json:"symbol"`
	Meaning string `json:"meaning"`
}

// Stimulus is one generated puzzle instance. It is never mutated after generation;
// the negation modifier returns a modified copy.
type Stimulus struct {
	Family        Family        `json:"family"`
	Tier          int           `json:"tier"`
	Cipher        []CipherEntry `json:"cipher"`
	Placement     Placement     `json:"placement"`
	Visual        Visual        `json:"visual"`
	Query         string        `json:"query"`
	Proof         string        `json:"proof"`
	ContextColors []string      `json:"context_colors,omitempty"`
	Negated       bool          `json:"negated"`
}

// Dictionary returns the cipher as a symbol -> meaning map.
func (s Stimulus) Dictionary() map[string]string {
	m := make(map[string]string, len(s.Cipher))
	for _, e := range s.Cipher {
		m[e.Symbol] = e.Meaning
	}
	return m
}

// Meaning looks up a symbol in the cipher.
func (s Stimulus) Meaning(symbol string) (string, bool) {
	for _, e := range s.Cipher {
		if e.Symbol == symbol {
			return e.Meaning, true
		}
	}
	return "", false
}

var (
	ErrDuplicateSymbol = errors.New("duplicate cipher symbol")
	ErrSymbolIsItem    = errors.New("cipher symbol doubles as an item name")
	ErrCipherSize      = errors.New("cipher size out of range")
	ErrVisualMismatch  = errors.New("visual payload does not match family")
	ErrUnknownFamily   = errors.New("unknown puzzle family")
)

// Validate checks the structural invariants of a stimulus.
func (s Stimulus) Validate() error {
	if s.Tier < 1 || s.Tier > 3 {
		return fmt.Errorf("tier %d out of range", s.Tier)
	}
	limit := MaxCipherSymbols
	if s.Negated {
		limit++
	}
	if n := len(s.Cipher); n < MinCipherSymbols || n > limit {
		return fmt.Errorf("%w: %d symbols", ErrCipherSize, n)
	}
	seen := make(map[string]struct{}, len(s.Cipher))
	for _, e := range s.Cipher {
		if _, dup := seen[e.Symbol]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateSymbol, e.Symbol)
		}
		seen[e.Symbol] = struct{}{}
	}
	if s.Visual == nil || s.Visual.Family() != s.Family {
		return ErrVisualMismatch
	}
	for _, name := range itemNames(s.Visual) {
		if _, clash := seen[name]; clash {
			return fmt.Errorf("%w: %s", ErrSymbolIsItem, name)
		}
	}
	return s.Visual.Validate()
}

// #endregion stimulus

// #region output

// Output is what a generator returns: the stimulus and its hidden result.
type Output struct {
	Stimulus     Stimulus
	Result       string
	UsedFallback bool // constraint search exhausted its bound
}

// #endregion output
