package metrics

import (
	"math"

	"github.com/san-kum/gssem/internal/state"
	"github.com/san-kum/gssem/internal/trajectory"
)

type FinalHouseholds struct {
	name  string
	value float64
}

func NewFinalHouseholds() *FinalHouseholds {
	return &FinalHouseholds{name: "final_households"}
}

func (f *FinalHouseholds) Name() string { return f.name }

func (f *FinalHouseholds) Observe(i int, s *state.State, r *trajectory.FlowRecord) {
	f.value = s.NumHH[i+1]
}

func (f *FinalHouseholds) Value() float64 { return f.value }

func (f *FinalHouseholds) Reset() { f.value = 0 }

// MinStock tracks the smallest value one compartment reaches.
type MinStock struct {
	name     string
	series   string
	min      float64
	observed bool
}

func NewMinStock(series string) *MinStock {
	return &MinStock{
		name:   "min_" + series,
		series: series,
	}
}

func (m *MinStock) Name() string { return m.name }

func (m *MinStock) Observe(i int, s *state.State, r *trajectory.FlowRecord) {
	values, ok := s.Stocks()[m.series]
	if !ok {
		return
	}
	v := math.Min(values[i], values[i+1])
	if !m.observed || v < m.min {
		m.min = v
		m.observed = true
	}
}

func (m *MinStock) Value() float64 {
	return m.min
}

func (m *MinStock) Reset() {
	m.min = 0
	m.observed = false
}
