package automation

import (
	"context"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/gssem/internal/config"
	"github.com/san-kum/gssem/internal/experiment"
)

var ErrBadSweep = errors.New("automation: sweep needs at least two steps and min < max")

// ParameterSweep runs the base configuration once per evenly spaced value of
// one parameter.
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

type SweepResult struct {
	ParamValue float64
	Metrics    map[string]float64
}

func RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 2 || sweep.ParamMin >= sweep.ParamMax {
		return nil, ErrBadSweep
	}

	values := floats.Span(make([]float64, sweep.NumSteps), sweep.ParamMin, sweep.ParamMax)
	results := make([]SweepResult, 0, len(values))

	for _, v := range values {
		cfg := sweep.Base.Clone()
		if cfg.Overrides == nil {
			cfg.Overrides = make(map[string]float64, 1)
		}
		cfg.Overrides[sweep.ParamName] = v

		res, err := experiment.New(cfg, "", nil).Run(ctx)
		if err != nil {
			return results, fmt.Errorf("sweep %s=%g: %w", sweep.ParamName, v, err)
		}
		results = append(results, SweepResult{ParamValue: v, Metrics: res.Trajectory.Metrics})
	}

	return results, nil
}
