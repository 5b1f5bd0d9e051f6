package game

import "math/rand/v2"

// Random is the source of randomness for the simulation. *rand.Rand satisfies it.
type Random interface {
	Float64() float64
	IntN(n int) int
}

// NewRandom returns a PCG-backed generator for the given seed.
func NewRandom(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed>>16|7))
}

// uniform returns a value in [lo, hi).
func uniform(r Random, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}
