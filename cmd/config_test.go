package cmd

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/clerk-sim/clerk-sim/sim"
	"github.com/clerk-sim/clerk-sim/sim/trace"
)

func TestLoadRunConfig_OverridesOnlyListedFields(t *testing.T) {
	// GIVEN a config file that sets the tick and the trace level
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/run.yaml", []byte("tick: 250ms\ntrace_level: events\n"), 0644))

	// WHEN it is loaded
	cfg, err := loadRunConfig(fs, "/run.yaml")

	// THEN those fields change and the rest keep their defaults
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.Tick)
	assert.Equal(t, "events", cfg.TraceLevel)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.Summary)
}

func TestLoadRunConfig_UnknownField_Rejected(t *testing.T) {
	// GIVEN a config with a typo in a field name
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/run.yaml", []byte("tik: 10ms\n"), 0644))

	// WHEN it is loaded
	_, err := loadRunConfig(fs, "/run.yaml")

	// THEN strict parsing reports a configuration error
	require.Error(t, err)
	assert.True(t, errors.Is(err, sim.ErrConfig))
}

func TestLoadRunConfig_MissingFile_ConfigError(t *testing.T) {
	_, err := loadRunConfig(afero.NewMemMapFs(), "/absent.yaml")
	assert.True(t, errors.Is(err, sim.ErrConfig))
}

func TestRunConfig_SimConfig_CarriesSettings(t *testing.T) {
	cfg := DefaultRunConfig()
	cfg.Tick = 30 * time.Millisecond
	cfg.MaxCustomers = 4
	cfg.TraceLevel = "none"

	sc := cfg.SimConfig()

	assert.Equal(t, 30*time.Millisecond, sc.Tick)
	assert.Equal(t, 4, sc.MaxCustomers)
	assert.Equal(t, trace.TraceLevelNone, sc.Trace.Level)
}
