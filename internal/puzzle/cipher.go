package puzzle

import (
	"github.com/danielpatrickdp/cipher-nback/internal/random"
)

// #region builder

// Bounds on the dictionary a generator builds. Negation adds one NOT symbol on
// top of MaxCipherSymbols.
const (
	MinCipherSymbols = 2
	MaxCipherSymbols = 5
)

// cipherBuilder assigns opaque symbols to meanings for a single stimulus.
type cipherBuilder struct {
	src    random.Source
	alloc  *random.Allocator
	syn    int
	icons  bool
	pools  map[string][]string
	single map[string]bool
	last   map[string]string
	order  []string
	size   int
}

func newCipher(src random.Source, alloc *random.Allocator, tier int) *cipherBuilder {
	return &cipherBuilder{
		src:    src,
		alloc:  alloc,
		syn:    synonyms(tier),
		icons:  random.Bool(src, 0.5),
		pools:  make(map[string][]string, MaxCipherSymbols),
		single: make(map[string]bool, 2),
		last:   make(map[string]string, MaxCipherSymbols),
	}
}

// define allocates the primary symbol for each meaning. Defining twice is a no-op.
func (c *cipherBuilder) define(meanings ...string) {
	for _, m := range meanings {
		if _, ok := c.pools[m]; ok {
			continue
		}
		c.pools[m] = []string{c.symbol()}
		c.order = append(c.order, m)
		c.size++
	}
}

// defineSingle allocates exactly one symbol for meaning regardless of tier.
func (c *cipherBuilder) defineSingle(meaning string) {
	if _, ok := c.pools[meaning]; ok {
		return
	}
	c.pools[meaning] = []string{c.alloc.Code()}
	c.single[meaning] = true
	c.order = append(c.order, meaning)
	c.size++
}

func (c *cipherBuilder) symbol() string {
	if c.icons {
		return c.alloc.Icon()
	}
	return c.alloc.Code()
}

// use returns a symbol for meaning. A meaning used again gets a synonym while
// its pool is below the tier's polysemy and the dictionary is below
// MaxCipherSymbols. The symbol drawn last time for the same meaning is filtered
// out first, so two roles only share a symbol when the pool has a single entry.
func (c *cipherBuilder) use(meaning string) string {
	c.define(meaning)
	pool := c.pools[meaning]
	if _, seen := c.last[meaning]; seen && !c.single[meaning] &&
		len(pool) < c.syn && c.size < MaxCipherSymbols {
		pool = append(pool, c.symbol())
		c.pools[meaning] = pool
		c.size++
	}
	candidates := pool
	if prev, ok := c.last[meaning]; ok {
		if rest := random.Without(pool, prev); len(rest) > 0 {
			candidates = rest
		}
	}
	sym := random.Choice(c.src, candidates)
	c.last[meaning] = sym
	return sym
}

// entries returns every defined symbol in randomized order.
func (c *cipherBuilder) entries() []CipherEntry {
	var out []CipherEntry
	for _, m := range c.order {
		for _, sym := range c.pools[m] {
			out = append(out, CipherEntry{Symbol: sym, Meaning: m})
		}
	}
	random.Shuffle(c.src, out)
	return out
}

// #endregion builder

// #region stimulus-helpers

func placement(src random.Source) Placement {
	if random.Bool(src, 0.5) {
		return PlaceLeft
	}
	return PlaceRight
}

// other returns the element of a two-element vocabulary that is not v.
func other(pair []string, v string) string {
	if pair[0] == v {
		return pair[1]
	}
	return pair[0]
}

// #endregion stimulus-helpers
