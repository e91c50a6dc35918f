package random

import (
	"math/rand/v2"
	"time"
)

// #region source

// Source is the randomness capability injected into generators and the scheduler.
type Source interface {
	IntN(n int) int
	Float64() float64
}

// New returns a PCG-backed Source. A zero seed derives one from the clock.
func New(seed uint64) Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// #endregion source

// #region helpers

// Choice returns a uniformly chosen element. items must be non-empty.
func Choice[T any](src Source, items []T) T {
	return items[src.IntN(len(items))]
}

// Shuffle permutes items in place (Fisher-Yates).
func Shuffle[T any](src Source, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// Shuffled returns a shuffled copy and leaves items untouched.
func Shuffled[T any](src Source, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	Shuffle(src, out)
	return out
}

// IntRange returns a uniform integer in [lo, hi].
func IntRange(src Source, lo, hi int) int {
	return lo + src.IntN(hi-lo+1)
}

// Bool returns true with probability p.
func Bool(src Source, p float64) bool {
	return src.Float64() < p
}

// Without returns items with every occurrence of drop removed.
func Without[T comparable](items []T, drop T) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if it != drop {
			out = append(out, it)
		}
	}
	return out
}

// #endregion helpers
