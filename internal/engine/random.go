package engine

import "math/rand/v2"

// Rand is the random source the engine draws from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a seeded PCG source so a game can be replayed from its seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

type dice struct {
	r Rand
}

// chance reports whether an event with probability p occurred.
func (d dice) chance(p float64) bool {
	return d.r.Float64() < p
}

// between returns an integer in [lo, hi).
func (d dice) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + d.r.IntN(hi-lo)
}

// inclusive returns an integer in [lo, hi].
func (d dice) inclusive(lo, hi int) int {
	return d.between(lo, hi+1)
}

func (d dice) pick(options []string) string {
	return options[d.r.IntN(len(options))]
}

func (d dice) coin() bool {
	return d.r.IntN(2) == 0
}
