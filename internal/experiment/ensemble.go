package experiment

import (
	"context"
	"errors"
	"sort"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/gssem/internal/config"
)

var ErrNoRuns = errors.New("experiment: ensemble needs at least one run")

// Ensemble repeats a stochastic configuration over consecutive seeds.
type Ensemble struct {
	base      *config.Config
	numRuns   int
	seedStart int64
	workers   int
}

func NewEnsemble(base *config.Config, numRuns int, seedStart int64, workers int) *Ensemble {
	if workers < 1 {
		workers = 1
	}
	return &Ensemble{base: base, numRuns: numRuns, seedStart: seedStart, workers: workers}
}

// Run executes every member and returns the results in seed order. The
// first error cancels the members that have not started.
func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	if e.numRuns < 1 {
		return nil, ErrNoRuns
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < min(e.workers, e.numRuns); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				cfg := e.base.Clone()
				cfg.Seed = e.seedStart + int64(idx)
				cfg.Stochastic = true

				results[idx], errs[idx] = New(cfg, "", nil).Run(ctx)
				if errs[idx] != nil {
					cancel()
				}
			}
		}()
	}

	for i := 0; i < e.numRuns; i++ {
		if ctx.Err() != nil {
			errs[i] = ctx.Err()
			continue
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return results, nil
}

// Stat is the spread of one metric across ensemble members.
type Stat struct {
	Name     string
	Mean     float64
	StdDev   float64
	Min, Max float64
}

// Summarize reduces every metric present in the results.
func Summarize(results []*Result) []Stat {
	values := make(map[string][]float64)
	for _, r := range results {
		for name, v := range r.Trajectory.Metrics {
			values[name] = append(values[name], v)
		}
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	stats := make([]Stat, 0, len(names))
	for _, name := range names {
		v := values[name]
		mean, std := stat.MeanStdDev(v, nil)
		if len(v) < 2 {
			std = 0
		}
		lo, hi := v[0], v[0]
		for _, x := range v {
			lo = min(lo, x)
			hi = max(hi, x)
		}
		stats = append(stats, Stat{Name: name, Mean: mean, StdDev: std, Min: lo, Max: hi})
	}
	return stats
}
