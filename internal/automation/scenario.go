// Package automation runs scripted batches of simulations: named scenario
// files and one-parameter sweeps.
package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gssem/internal/config"
	"github.com/san-kum/gssem/internal/experiment"
	"github.com/san-kum/gssem/internal/storage"
)

var ErrEmptyScenario = errors.New("automation: scenario has no steps")

// Scenario is a list of runs read from YAML.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset (baseline when empty) and applies its
// own fields on top. Zero Time and nil booleans keep the preset's values.
type ScenarioStep struct {
	Name       string             `yaml:"name"`
	Preset     string             `yaml:"preset"`
	Time       int                `yaml:"time"`
	Seed       int64              `yaml:"seed"`
	Stochastic *bool              `yaml:"stochastic"`
	Duplicate  *bool              `yaml:"duplicate_final_step"`
	Overrides  map[string]float64 `yaml:"overrides"`
}

// StepResult pairs a step with its stored run.
type StepResult struct {
	Step  string
	RunID string
	Meta  storage.RunMetadata
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, ErrEmptyScenario
	}
	return &scenario, nil
}

// Config resolves the step into a full run configuration.
func (s ScenarioStep) Config() (*config.Config, string, error) {
	preset := s.Preset
	if preset == "" {
		preset = "baseline"
	}
	cfg, err := config.GetPreset(preset)
	if err != nil {
		return nil, "", err
	}
	if s.Time != 0 {
		cfg.Time = s.Time
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	if s.Stochastic != nil {
		cfg.Stochastic = *s.Stochastic
	}
	if s.Duplicate != nil {
		cfg.DuplicateFinalStep = *s.Duplicate
	}
	if len(s.Overrides) > 0 {
		if cfg.Overrides == nil {
			cfg.Overrides = make(map[string]float64, len(s.Overrides))
		}
		for k, v := range s.Overrides {
			cfg.Overrides[k] = v
		}
	}
	return cfg, preset, nil
}

// RunScenario executes the steps in order and stores every run. Runs stored
// before a failing step are returned with the error.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store, logger *slog.Logger) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step-%d", i+1)
		}
		if logger != nil {
			logger.Info("scenario step", "scenario", scenario.Name, "step", name, "n", i+1, "of", len(scenario.Steps))
		}

		cfg, preset, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %s: %w", name, err)
		}

		res, err := experiment.New(cfg, preset, logger).Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %s run: %w", name, err)
		}

		runID, err := st.Save(res.Meta, res.Trajectory)
		if err != nil {
			return results, fmt.Errorf("step %s save: %w", name, err)
		}
		res.Meta.ID = runID
		results = append(results, StepResult{Step: name, RunID: runID, Meta: res.Meta})
	}

	return results, nil
}
