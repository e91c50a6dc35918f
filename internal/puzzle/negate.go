package puzzle

import (
	"fmt"

	"github.com/danielpatrickdp/cipher-nback/internal/random"
)

// #region opposites

// NegationProbability is the chance a tier 3 stimulus is wrapped in NOT.
const NegationProbability = 0.30

var opposites = map[string]string{}

func init() {
	pairs := [][2]string{
		{Greater, Lesser},
		{Same, Opposite},
		{Higher, Lower},
		{Before, After},
		{Trigger, Block},
		{Red, Blue},
		{NorthEast, SouthWest},
		{NorthWest, SouthEast},
		{Rot0, Rot180},
		{Rot90, Rot270},
		{Left, Right},
		{Front, Back},
		{Analogous, NonAnalogous},
	}
	for _, p := range pairs {
		opposites[p[0]] = p[1]
		opposites[p[1]] = p[0]
	}
}

// Inverse returns the registered inversion of a result label.
func Inverse(result string) (string, bool) {
	o, ok := opposites[result]
	return o, ok
}

// #endregion opposites

// #region negate

// Negate wraps out in NOT and inverts its result when the inversion stays inside
// the family's vocabulary. The input is not modified.
func Negate(src random.Source, out Output) (Output, bool) {
	st := out.Stimulus
	if st.Negated {
		return out, false
	}
	inv, ok := Inverse(out.Result)
	if !ok || !InVocabulary(st.Family, st.Tier, inv) {
		return out, false
	}

	reserved := itemNames(st.Visual)
	for _, e := range st.Cipher {
		reserved = append(reserved, e.Symbol)
	}
	notSym := random.NewAllocator(src, reserved...).Code()

	cipher := make([]CipherEntry, len(st.Cipher), len(st.Cipher)+1)
	copy(cipher, st.Cipher)
	cipher = append(cipher, CipherEntry{Symbol: notSym, Meaning: labelNot})
	random.Shuffle(src, cipher)

	st.Cipher = cipher
	st.Negated = true
	st.Query = fmt.Sprintf("%s %s", notSym, st.Query)
	st.Proof = fmt.Sprintf("%s; NOT(%s) = %s", st.Proof, out.Result, inv)
	if len(st.ContextColors) > 0 {
		st.ContextColors = append([]string(nil), st.ContextColors...)
	}

	return Output{Stimulus: st, Result: inv, UsedFallback: out.UsedFallback}, true
}

// #endregion negate
