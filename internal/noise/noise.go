// Package noise pre-generates the Gaussian shock sequences that perturb
// cohort mortality and births. Every sequence is drawn once, up front, for the
// whole horizon so a run is reproducible from its seed alone.
package noise

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Sequence is a fixed-length series of standard normal draws indexed by step.
type Sequence []float64

// At returns the draw for step i, or 0 outside the horizon.
func (s Sequence) At(i int) float64 {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}

// Set holds one mortality and one birth sequence per cohort.
type Set struct {
	M1 Sequence
	B1 Sequence
	M2 Sequence
	B2 Sequence
}

// Generate draws the four sequences of length n from a PCG source seeded with
// seed, in the order M1, B1, M2, B2.
func Generate(seed int64, n int) *Set {
	src := rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)
	dist := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	draw := func() Sequence {
		s := make(Sequence, n)
		for i := range s {
			s[i] = dist.Rand()
		}
		return s
	}

	return &Set{
		M1: draw(),
		B1: draw(),
		M2: draw(),
		B2: draw(),
	}
}

// Zero returns a set of all-zero sequences of length n.
func Zero(n int) *Set {
	return &Set{
		M1: make(Sequence, n),
		B1: make(Sequence, n),
		M2: make(Sequence, n),
		B2: make(Sequence, n),
	}
}
