// Package config loads round-trip run settings from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"goasterix/internal/sim"
	"goasterix/internal/validator"
)

// Default scenario values
const (
	DefaultCategory  = 48
	DefaultTargets   = 10
	DefaultDurationS = 60.0
	DefaultSeed      = 1
)

// Radar configures the simulated sensor and scenario size.
type Radar struct {
	sim.Config `yaml:",inline"`
	Targets    int     `yaml:"targets"`
	DurationS  float64 `yaml:"duration_s"`
}

// Config holds the settings of a round-trip run.
type Config struct {
	Category   uint8                `yaml:"category"`
	Verbose    bool                 `yaml:"verbose"`
	Tolerances validator.Tolerances `yaml:"tolerances"`
	Radar      Radar                `yaml:"radar"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Category:   DefaultCategory,
		Tolerances: validator.DefaultTolerances(),
		Radar: Radar{
			Config: sim.Config{
				SIC:       1,
				LatDeg:    52.5,
				LonDeg:    13.4,
				AltM:      100,
				MinRangeM: sim.DefaultMinRangeM,
				MaxRangeM: sim.DefaultMaxRangeM,
				NoiseStd:  0.1,
				Seed:      DefaultSeed,
			},
			Targets:   DefaultTargets,
			DurationS: DefaultDurationS,
		},
	}
}

// Load reads a YAML file. Keys absent from the file keep their default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML settings over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the settings describe a runnable scenario.
func (c Config) Validate() error {
	switch c.Category {
	case 21, 48, 62:
	default:
		return fmt.Errorf("invalid config: round trip supports CAT021, CAT048 and CAT062, got %d", c.Category)
	}
	if err := c.Tolerances.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Radar.Targets <= 0 {
		return fmt.Errorf("invalid config: radar.targets must be positive, got %d", c.Radar.Targets)
	}
	if c.Radar.DurationS <= 0 {
		return fmt.Errorf("invalid config: radar.duration_s must be positive, got %v", c.Radar.DurationS)
	}
	if c.Radar.MinRangeM < 0 || c.Radar.MaxRangeM <= c.Radar.MinRangeM {
		return fmt.Errorf("invalid config: radar range [%v, %v] m is empty", c.Radar.MinRangeM, c.Radar.MaxRangeM)
	}
	if c.Radar.LatDeg < -90 || c.Radar.LatDeg > 90 {
		return fmt.Errorf("invalid config: radar.lat_deg %v out of range", c.Radar.LatDeg)
	}
	return nil
}
