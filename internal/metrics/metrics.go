// Package metrics summarises a run into named scalars.
package metrics

import (
	"github.com/san-kum/gssem/internal/state"
	"github.com/san-kum/gssem/internal/trajectory"
)

type Metric interface {
	Name() string
	Observe(i int, s *state.State, r *trajectory.FlowRecord)
	Value() float64
	Reset()
}

// Standard returns the metrics reported after every run.
func Standard(minViable float64) []Metric {
	return []Metric{
		NewPeakTemperature(),
		NewEmissionsGrowth(),
		NewFinalHouseholds(),
		NewViability(minViable),
		NewMinStock("RP"),
		NewMinStock("ERP"),
		NewColumnMean("W"),
	}
}
