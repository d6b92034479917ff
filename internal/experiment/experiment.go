// Package experiment turns a run configuration into a finished, summarised
// trajectory, alone or as a seeded ensemble.
package experiment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/gssem/internal/config"
	"github.com/san-kum/gssem/internal/engine"
	"github.com/san-kum/gssem/internal/metrics"
	"github.com/san-kum/gssem/internal/storage"
	"github.com/san-kum/gssem/internal/trajectory"
)

type Result struct {
	Trajectory *trajectory.Trajectory
	// Meta is filled from the configuration; the store assigns the ID.
	Meta storage.RunMetadata
}

type Experiment struct {
	cfg       *config.Config
	preset    string
	logger    *slog.Logger
	observers []engine.Observer
}

func New(cfg *config.Config, preset string, logger *slog.Logger) *Experiment {
	return &Experiment{cfg: cfg, preset: preset, logger: logger}
}

func (e *Experiment) AddObserver(o engine.Observer) {
	e.observers = append(e.observers, o)
}

func (e *Experiment) Config() *config.Config { return e.cfg }

func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	p, err := e.cfg.Params()
	if err != nil {
		return nil, fmt.Errorf("experiment: %w", err)
	}

	var opts []engine.Option
	if e.logger != nil {
		opts = append(opts, engine.WithLogger(e.logger))
	}
	eng, err := engine.New(p, e.cfg.EngineConfig(), opts...)
	if err != nil {
		return nil, err
	}
	for _, m := range metrics.Standard(e.cfg.MinViable) {
		eng.AddMetric(m)
	}
	for _, o := range e.observers {
		eng.AddObserver(o)
	}

	traj, err := eng.Run(ctx)
	if err != nil {
		return nil, err
	}

	return &Result{
		Trajectory: traj,
		Meta: storage.RunMetadata{
			Horizon:            e.cfg.Time,
			Seed:               e.cfg.Seed,
			Stochastic:         e.cfg.Stochastic,
			DuplicateFinalStep: e.cfg.DuplicateFinalStep,
			Preset:             e.preset,
			Overrides:          e.cfg.Overrides,
		},
	}, nil
}
