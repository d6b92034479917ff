// Package engine advances the compartment state one discrete step at a time.
//
// Each step runs a fixed sequence of stages: cohort weighting, demographic
// rates, temperature, prices and production, demand, raw flows, a first
// balancing pass, resource-pool and energy settlement, a second balancing
// pass, industrial settlement, births, next-state assignment and emissions.
// Stages communicate through a step value; only next-state assignment writes
// to the state arrays, and only at index i+1.
package engine

import (
	"context"
	"io"
	"log/slog"
	"math"

	"github.com/san-kum/gssem/internal/noise"
	"github.com/san-kum/gssem/internal/params"
	"github.com/san-kum/gssem/internal/state"
	"github.com/san-kum/gssem/internal/trajectory"
)

type Engine struct {
	p     *params.Params
	cfg   Config
	noise *noise.Set
	st    *state.State
	rec   *trajectory.Recorder

	logger    *slog.Logger
	metrics   []Metric
	observers []Observer
}

type Option func(*Engine)

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithNoise replaces the generated shock sequences.
func WithNoise(n *noise.Set) Option {
	return func(e *Engine) { e.noise = n }
}

// New validates cfg and allocates the state arrays. The bundle is used as
// given; callers wanting isolation pass a clone.
func New(p *params.Params, cfg Config, opts ...Option) (*Engine, error) {
	if p == nil {
		return nil, ErrNilParams
	}
	if cfg.Horizon < 2 {
		return nil, ErrHorizonTooShort
	}

	e := &Engine{
		p:      p,
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.noise == nil {
		if cfg.Stochastic {
			e.noise = noise.Generate(cfg.Seed, cfg.Horizon)
		} else {
			e.noise = noise.Zero(cfg.Horizon)
		}
	}

	e.st = state.New(p, cfg.Horizon)
	e.rec = trajectory.NewRecorder(cfg.Iterations())
	return e, nil
}

func (e *Engine) AddMetric(m Metric)     { e.metrics = append(e.metrics, m) }
func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

// State exposes the arrays being written; it is complete after Run.
func (e *Engine) State() *state.State { return e.st }

func (e *Engine) Config() Config { return e.cfg }

// Run iterates the step function over the horizon. On the last iteration with
// DuplicateFinalStep set, step T-2 is evaluated again and its row repeated.
func (e *Engine) Run(ctx context.Context) (*trajectory.Trajectory, error) {
	T := e.cfg.Horizon
	n := e.cfg.Iterations()

	for _, m := range e.metrics {
		m.Reset()
	}

	e.logger.Info("simulation started",
		"horizon", T,
		"iterations", n,
		"stochastic", e.cfg.Stochastic,
		"seed", e.cfg.Seed,
	)

	for it := 0; it < n; it++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		i := it
		if i == T-1 {
			i = T - 2
		}

		rec := e.Step(i)

		if e.cfg.Validate {
			if err := e.validate(i + 1); err != nil {
				e.logger.Error("step produced invalid state", "step", i, "err", err)
				return nil, err
			}
		}

		e.rec.Append(rec)
		last := e.rec.Last()

		for _, m := range e.metrics {
			m.Observe(i, e.st, last)
		}
		for _, obs := range e.observers {
			obs.OnStep(i, e.st, last)
		}

		e.logger.Debug("step",
			"i", i,
			"temp", e.st.Temp[i+1],
			"numHH", e.st.NumHH[i+1],
			"W", rec.W,
		)
	}

	traj := e.rec.Finish(e.st.Series())
	if e.cfg.Validate {
		if err := traj.Validate(); err != nil {
			e.logger.Error("trajectory holds invalid values", "err", err)
			return nil, err
		}
	}
	for _, m := range e.metrics {
		traj.Metrics[m.Name()] = m.Value()
	}

	rows, cols := traj.XShape()
	_, ny, nt := traj.YShape()
	e.logger.Info("simulation completed",
		"x_shape", []int{rows, cols},
		"y_shape", []int{1, ny, nt},
		"final_numHH", e.st.NumHH[T-1],
		"final_temp", e.st.Temp[T-1],
	)
	return traj, nil
}

// Step computes the transition from index i to i+1 and returns its flow
// record. i must lie in [0, T-2].
func (e *Engine) Step(i int) trajectory.FlowRecord {
	s := &step{i: i, rpirp: e.p.RPIRP}

	e.weights(s)
	e.demographicRates(s)
	e.temperature(s)
	e.economy(s)
	e.demand(s)
	e.rawFlows(s)

	e.balancePass(s)
	e.settleResourcePool(s)
	e.settleEnergy(s)
	e.balancePass(s)

	e.settleIndustry(s)
	e.births(s)
	e.advance(s)
	e.emissions(s)

	return s.rec
}

func (e *Engine) validate(k int) error {
	for name, series := range e.st.Stocks() {
		v := series[k]
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return &StepError{Step: k - 1, Series: name, Value: v, Err: ErrInvalidValue}
		}
	}
	for _, c := range []struct {
		name string
		v    float64
	}{
		{"numHH", e.st.NumHH[k]},
		{"numHH1", e.st.NumHH1[k]},
		{"numHH2", e.st.NumHH2[k]},
		{"CO2eq", e.st.CO2eq[k]},
		{"temp", e.st.Temp[k]},
	} {
		if math.IsNaN(c.v) || math.IsInf(c.v, 0) {
			return &StepError{Step: k - 1, Series: c.name, Value: c.v, Err: ErrInvalidValue}
		}
	}
	return nil
}

// step carries one transition's intermediate values between stages. Most
// flows live directly in the record that is eventually emitted.
type step struct {
	i   int
	rec trajectory.FlowRecord

	alfa1, alfa2 float64
	etaa1, etaa2 float64

	// isSignal is the scaled industrial mass shortfall feeding wages and
	// industrial prices.
	isSignal float64
	viable   bool

	p1h1Demand float64

	stockRP float64
	// rpirp is the RP to IRP transfer after settlement.
	rpirp float64
	erpee float64

	isHHFlow float64

	// catch-up already handed out this step, across both passes
	p1Granted float64
	h1Granted float64
}
