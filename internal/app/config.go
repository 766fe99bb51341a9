package app

import (
	"goasterix/internal/config"
)

// Default configuration constants
const (
	DefaultChunkSize = 4096 // bytes read per input chunk
	RecordPrefix     = "asterix"
)

// Config holds application configuration
type Config struct {
	ConfigFile  string
	Category    uint8 // decode: restrict to one category; roundtrip: scenario category
	HexInput    bool
	OutputDir   string // decode: archive records here instead of writing them out
	UseUTC      bool
	KeepDays    int
	Targets     int
	Seed        int64
	Verbose     bool
	ShowVersion bool
}

// RunConfig loads the configuration file, if any, and applies the flags that
// were set on top of it.
func (c Config) RunConfig() (config.Config, error) {
	cfg := config.Default()
	if c.ConfigFile != "" {
		var err error
		if cfg, err = config.Load(c.ConfigFile); err != nil {
			return config.Config{}, err
		}
	}

	if c.Category != 0 {
		cfg.Category = c.Category
	}
	if c.Targets > 0 {
		cfg.Radar.Targets = c.Targets
	}
	if c.Seed != 0 {
		cfg.Radar.Seed = c.Seed
	}
	if c.Verbose {
		cfg.Verbose = true
	}
	return cfg, cfg.Validate()
}
