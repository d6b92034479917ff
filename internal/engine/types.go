package engine

import (
	"github.com/san-kum/gssem/internal/state"
	"github.com/san-kum/gssem/internal/trajectory"
)

type Config struct {
	// Horizon is T, the length of every series.
	Horizon int
	Seed    int64
	// Stochastic enables the mortality and birth shocks.
	Stochastic bool
	// DuplicateFinalStep replays transition T-2 on the last iteration so
	// the flow record has T rows.
	DuplicateFinalStep bool
	// Validate checks every written index for NaN, Inf and negative stocks.
	Validate bool
}

func DefaultConfig() Config {
	return Config{
		Horizon:            100,
		Seed:               0,
		Stochastic:         false,
		DuplicateFinalStep: true,
		Validate:           true,
	}
}

// Iterations is the number of loop passes, and the number of flow records.
func (c Config) Iterations() int {
	if c.DuplicateFinalStep {
		return c.Horizon
	}
	return c.Horizon - 1
}

// Metric summarises a run from the state after each step.
type Metric interface {
	Name() string
	Observe(i int, s *state.State, r *trajectory.FlowRecord)
	Value() float64
	Reset()
}

// Observer is notified after each step with the index that was read.
type Observer interface {
	OnStep(i int, s *state.State, r *trajectory.FlowRecord)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(i int, s *state.State, r *trajectory.FlowRecord)

func (f ObserverFunc) OnStep(i int, s *state.State, r *trajectory.FlowRecord) { f(i, s, r) }
