package puzzle

import (
	"slices"

	"github.com/danielpatrickdp/cipher-nback/internal/random"
)

// #region labels

// Result and cipher labels.
const (
	Greater       = "GREATER"
	Lesser        = "LESSER"
	Same          = "SAME"
	Opposite      = "OPPOSITE"
	Different     = "DIFFERENT"
	Higher        = "HIGHER"
	Lower         = "LOWER"
	Before        = "BEFORE"
	After         = "AFTER"
	Trigger       = "TRIGGER"
	Block         = "BLOCK"
	Red           = "RED"
	Blue          = "BLUE"
	NorthEast     = "NORTH_EAST"
	NorthWest     = "NORTH_WEST"
	SouthEast     = "SOUTH_EAST"
	SouthWest     = "SOUTH_WEST"
	Rot0          = "ROT_0"
	Rot90         = "ROT_90"
	Rot180        = "ROT_180"
	Rot270        = "ROT_270"
	Left          = "LEFT"
	Right         = "RIGHT"
	Front         = "FRONT"
	Back          = "BACK"
	Analogous     = "ANALOGOUS"
	NonAnalogous  = "NON_ANALOGOUS"
	labelNot      = "NOT"
	labelContains = "CONTAINS"
	labelBelongs  = "BELONGS_TO"
	labelSimul    = "SIMULTANEOUS"
	labelPass     = "PASS"
	labelInvert   = "INVERT"
	labelForward  = "FORWARD"
	labelNorth    = "NORTH"
	labelSouth    = "SOUTH"
	labelEast     = "EAST"
	labelWest     = "WEST"
	labelI        = "I"
	labelYou      = "YOU"
	labelOn       = "ON"
	labelOff      = "OFF"
	labelAnd      = "AND"
	labelOr       = "OR"
)

// #endregion labels

// #region vocabulary

// Vocabulary returns the closed result vocabulary of a family at a tier.
func Vocabulary(f Family, tier int) []string {
	switch f {
	case Comparison:
		return []string{Greater, Lesser}
	case Opposition:
		return []string{Same, Opposite, Different}
	case Hierarchy:
		return []string{Higher, Lower, Same}
	case Temporal:
		return []string{Before, After}
	case Causal:
		if tier >= 3 {
			return []string{Red, Blue}
		}
		return []string{Trigger, Block}
	case Spatial:
		if tier >= 3 {
			return []string{Rot0, Rot90, Rot180, Rot270}
		}
		return []string{NorthEast, NorthWest, SouthEast, SouthWest}
	case Deictic:
		return []string{Left, Right, Front, Back}
	case Conditional:
		return []string{Red, Blue}
	case Analogy:
		return []string{Analogous, NonAnalogous}
	}
	return nil
}

// InVocabulary reports whether result is legal for the family at the tier.
func InVocabulary(f Family, tier int, result string) bool {
	return slices.Contains(Vocabulary(f, tier), result)
}

// pickResult applies the match-forcing rule shared by every generator: a legal
// prev is echoed when forcing and excluded when not; otherwise draw uniformly.
func pickResult(src random.Source, vocab []string, prev string, force bool) string {
	if prev != "" && slices.Contains(vocab, prev) {
		if force {
			return prev
		}
		return random.Choice(src, random.Without(vocab, prev))
	}
	return random.Choice(src, vocab)
}

// synonyms is the number of symbols per meaning: two at the top tier (polysemy).
func synonyms(tier int) int {
	if tier >= 3 {
		return 2
	}
	return 1
}

// #endregion vocabulary
