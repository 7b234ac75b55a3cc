package cmd

import (
	"bytes"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	sim "github.com/clerk-sim/clerk-sim/sim"
	"github.com/clerk-sim/clerk-sim/sim/trace"
)

// RunConfig represents the run configuration file.
// All top-level fields must be listed to satisfy KnownFields(true) strict parsing.
type RunConfig struct {
	Tick         time.Duration `yaml:"tick"`
	MaxCustomers int           `yaml:"max_customers"`
	LogLevel     string        `yaml:"log_level"`
	TraceLevel   string        `yaml:"trace_level"`
	TraceOutput  string        `yaml:"trace_output"`
	Progress     bool          `yaml:"progress"`
	Summary      bool          `yaml:"summary"`
}

// DefaultRunConfig returns the values used when neither a config file nor a flag sets them.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Tick:       sim.DefaultTick,
		LogLevel:   "warn",
		TraceLevel: string(trace.TraceLevelServices),
		Summary:    true,
	}
}

// loadRunConfig parses a YAML run config on top of the defaults.
// Uses strict field checking: typos must cause errors.
func loadRunConfig(fs afero.Fs, path string) (RunConfig, error) {
	cfg := DefaultRunConfig()
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return cfg, errors.Wrapf(sim.ErrConfig, "reading config file: %v", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, errors.Wrapf(sim.ErrConfig, "parsing config YAML %s: %v", path, err)
	}
	return cfg, nil
}

// SimConfig converts the run configuration to the simulator's configuration.
func (c RunConfig) SimConfig() sim.SimConfig {
	cfg := sim.DefaultSimConfig()
	cfg.Tick = c.Tick
	cfg.MaxCustomers = c.MaxCustomers
	cfg.Trace.Level = trace.TraceLevel(c.TraceLevel)
	return cfg
}
