package random

// #region pools

var (
	onsets  = []string{"B", "D", "F", "G", "K", "L", "M", "N", "P", "R", "S", "T", "V", "X", "Z"}
	vowels  = []string{"A", "E", "I", "O", "U", "Y"}
	codas   = []string{"K", "X", "Z", "N", "R", "P", "T", "Q"}
	iconSet = []string{"▲", "●", "◆", "■", "★", "✚", "⬟", "⬢", "◐", "◇", "▼", "✖"}
)

// maxCodeAttempts bounds rejection sampling before falling back to a numbered code.
const maxCodeAttempts = 64

// #endregion pools

// #region allocator

// Allocator hands out opaque symbols that are unique within one stimulus.
type Allocator struct {
	src  Source
	used map[string]struct{}
	seq  int
}

// NewAllocator creates an allocator. reserved symbols are never handed out.
func NewAllocator(src Source, reserved ...string) *Allocator {
	a := &Allocator{src: src, used: make(map[string]struct{}, 16)}
	for _, r := range reserved {
		a.used[r] = struct{}{}
	}
	return a
}

// Code returns a fresh three-letter nonsense syllable such as "VEX".
func (a *Allocator) Code() string {
	for range maxCodeAttempts {
		c := Choice(a.src, onsets) + Choice(a.src, vowels) + Choice(a.src, codas)
		if a.claim(c) {
			return c
		}
	}
	// pool is large enough that this only triggers with adversarial sources
	for {
		a.seq++
		c := "Q" + string(rune('A'+a.seq%26)) + string(rune('0'+a.seq%10))
		if a.claim(c) {
			return c
		}
	}
}

// Codes returns n distinct codes.
func (a *Allocator) Codes(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = a.Code()
	}
	return out
}

// Icon returns an unused glyph, or a code once every glyph is taken.
func (a *Allocator) Icon() string {
	free := make([]string, 0, len(iconSet))
	for _, ic := range iconSet {
		if _, taken := a.used[ic]; !taken {
			free = append(free, ic)
		}
	}
	if len(free) == 0 {
		return a.Code()
	}
	ic := Choice(a.src, free)
	a.used[ic] = struct{}{}
	return ic
}

// Used reports whether sym was already handed out or reserved.
func (a *Allocator) Used(sym string) bool {
	_, ok := a.used[sym]
	return ok
}

func (a *Allocator) claim(c string) bool {
	if _, taken := a.used[c]; taken {
		return false
	}
	a.used[c] = struct{}{}
	return true
}

// #endregion allocator
