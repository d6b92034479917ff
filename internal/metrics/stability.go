package metrics

import (
	"github.com/san-kum/gssem/internal/state"
	"github.com/san-kum/gssem/internal/trajectory"
)

// Viability is the fraction of steps after which the society still counts
// at least threshold households.
type Viability struct {
	name      string
	threshold float64
	viable    int
	samples   int
}

func NewViability(threshold float64) *Viability {
	return &Viability{
		name:      "viability",
		threshold: threshold,
	}
}

func (v *Viability) Name() string {
	return v.name
}

func (v *Viability) Observe(i int, s *state.State, r *trajectory.FlowRecord) {
	v.samples++
	if s.NumHH[i+1] >= v.threshold {
		v.viable++
	}
}

func (v *Viability) Value() float64 {
	if v.samples == 0 {
		return 1.0
	}
	return float64(v.viable) / float64(v.samples)
}

func (v *Viability) Reset() {
	v.viable = 0
	v.samples = 0
}
