package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gssem/internal/engine"
	"github.com/san-kum/gssem/internal/params"
)

const (
	DefaultTime      = 100
	DefaultOutputDir = "runs"
	DefaultLogLevel  = "info"
	// DefaultMinViable is the household count below which a step is not
	// viable for the viability metric.
	DefaultMinViable = 20
)

type Config struct {
	Time               int                `yaml:"time"`
	Seed               int64              `yaml:"seed"`
	Stochastic         bool               `yaml:"stochastic"`
	DuplicateFinalStep bool               `yaml:"duplicate_final_step"`
	Validate           bool               `yaml:"validate"`
	OutputDir          string             `yaml:"output_dir"`
	LogLevel           string             `yaml:"log_level"`
	MinViable          float64            `yaml:"min_viable"`
	Overrides          map[string]float64 `yaml:"overrides,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Time:               DefaultTime,
		DuplicateFinalStep: true,
		Validate:           true,
		OutputDir:          DefaultOutputDir,
		LogLevel:           DefaultLogLevel,
		MinViable:          DefaultMinViable,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy, so presets can be handed out and edited.
func (c *Config) Clone() *Config {
	out := *c
	if c.Overrides != nil {
		out.Overrides = make(map[string]float64, len(c.Overrides))
		for k, v := range c.Overrides {
			out.Overrides[k] = v
		}
	}
	return &out
}

func (c *Config) EngineConfig() engine.Config {
	return engine.Config{
		Horizon:            c.Time,
		Seed:               c.Seed,
		Stochastic:         c.Stochastic,
		DuplicateFinalStep: c.DuplicateFinalStep,
		Validate:           c.Validate,
	}
}

// Params builds the default bundle with the overrides applied.
func (c *Config) Params() (*params.Params, error) {
	p := params.Default()
	if len(c.Overrides) == 0 {
		return p, nil
	}
	if err := p.Apply(c.Overrides); err != nil {
		return nil, err
	}
	return p, nil
}
