package cluster

import "math/rand/v2"

// Rand is the source of randomness for layout and placement.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	// Float64 returns a pseudo-random number in [0.0, 1.0).
	Float64() float64
}

// NewRand returns a deterministic generator for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// uniform returns a value in [lo, hi).
func uniform(rng Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
