package common

import "math/rand"

// RNG is the single source of randomness threaded through the simulation.
// *rand.Rand satisfies it.
type RNG interface {
	Intn(n int) int
	Float64() float64
}

// NewRNG returns a deterministic source for the given seed.
func NewRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// RandInt returns a uniform integer in [lo, hi].
func RandInt(r RNG, lo, hi int) int {
	if hi <= lo || r == nil {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// RandFloat returns a uniform float in [lo, hi).
func RandFloat(r RNG, lo, hi float64) float64 {
	if hi <= lo || r == nil {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}

// Chance reports true with probability p.
func Chance(r RNG, p float64) bool {
	if r == nil {
		return false
	}
	return r.Float64() < p
}
