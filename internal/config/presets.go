package config

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownPreset = errors.New("config: unknown preset")

var Presets = map[string]*Config{
	"baseline": {
		Time: 100, DuplicateFinalStep: true, Validate: true,
		OutputDir: DefaultOutputDir, LogLevel: DefaultLogLevel, MinViable: DefaultMinViable,
	},
	"stochastic": {
		Time: 100, Seed: 1, Stochastic: true, DuplicateFinalStep: true, Validate: true,
		OutputDir: DefaultOutputDir, LogLevel: DefaultLogLevel, MinViable: DefaultMinViable,
	},
	"short": {
		Time: 10, DuplicateFinalStep: true, Validate: true,
		OutputDir: DefaultOutputDir, LogLevel: DefaultLogLevel, MinViable: DefaultMinViable,
	},
	// corrected drops the replayed last transition.
	"corrected": {
		Time: 100, DuplicateFinalStep: false, Validate: true,
		OutputDir: DefaultOutputDir, LogLevel: DefaultLogLevel, MinViable: DefaultMinViable,
	},
}

// GetPreset returns a copy of the named preset.
func GetPreset(name string) (*Config, error) {
	cfg, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, name)
	}
	return cfg.Clone(), nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
