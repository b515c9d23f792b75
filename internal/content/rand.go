package content

import "math/rand/v2"

// Rand is the random source used for selection and placement.
// *rand.Rand from math/rand/v2 satisfies it; tests pass a seeded PCG.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRand is goroutine-safe and unseeded.
var DefaultRand Rand = globalRand{}

// NewSeededRand returns a deterministic source. Not goroutine-safe.
func NewSeededRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Sample draws up to n items uniformly without replacement.
// The input slice is not modified.
func Sample(r Rand, items []Item, n int) []Item {
	if n <= 0 || len(items) == 0 {
		return []Item{}
	}
	if r == nil {
		r = DefaultRand
	}
	pool := make([]Item, len(items))
	copy(pool, items)
	if n > len(pool) {
		n = len(pool)
	}
	// partial Fisher-Yates
	for i := 0; i < n; i++ {
		j := i + r.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}
