package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/clerk-sim/clerk-sim/sim"
)

const threeCustomers = "3\n1:0,6,1\n2:2,2,5\n3:1,2,1\n"

// setupCLI swaps in an in-memory filesystem, clears flag state left by earlier
// executions and returns the buffer the commands write to.
func setupCLI(t *testing.T, files map[string]string) (afero.Fs, *bytes.Buffer) {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}
	prev := appFs
	appFs = fs
	t.Cleanup(func() { appFs = prev })

	for _, c := range []*cobra.Command{runCmd, validateCmd} {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(&bytes.Buffer{})
	return fs, out
}

func TestRunCommand_PrintsEventsSummaryAndTrace(t *testing.T) {
	// GIVEN a three-customer input where customer 2 outranks the one in service
	fs, out := setupCLI(t, map[string]string{"/in.txt": threeCustomers})
	rootCmd.SetArgs([]string{"run", "--input", "/in.txt", "--tick", "20ms", "--trace-out", "/trace.yaml"})

	// WHEN the run command executes
	err := rootCmd.Execute()

	// THEN it succeeds and reports the preemption, the banner and the metrics
	require.NoError(t, err)
	output := out.String()
	assert.Contains(t, output, "customer  2 interrupts the service of lower-priority customer  1")
	assert.Contains(t, output, "clerk finishes serving customer  3")
	assert.Contains(t, output, "END OF SIMULATION")
	assert.Contains(t, output, "=== Simulation Metrics ===")

	// AND the trace file is written
	data, err := afero.ReadFile(fs, "/trace.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "services:")
	assert.Contains(t, string(data), "outcome: preempted")
}

func TestRunCommand_SummaryDisabled_NoMetrics(t *testing.T) {
	_, out := setupCLI(t, map[string]string{"/in.txt": "1\n1:0,1,1\n"})
	rootCmd.SetArgs([]string{"run", "--input", "/in.txt", "--tick", "10ms", "--summary=false"})

	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "END OF SIMULATION")
	assert.NotContains(t, out.String(), "Simulation Metrics")
}

func TestRunCommand_ConfigFileSuppliesTick_FlagWins(t *testing.T) {
	// GIVEN a config file with a long tick and a flag overriding the limit
	_, out := setupCLI(t, map[string]string{
		"/in.txt":   "2\n1:0,1,1\n2:0,1,1\n",
		"/run.yaml": "tick: 10ms\nmax_customers: 5\nsummary: false\n",
	})
	rootCmd.SetArgs([]string{"run", "--input", "/in.txt", "--config", "/run.yaml", "--max-customers", "1"})

	// WHEN the run executes
	err := rootCmd.Execute()

	// THEN the flag's limit applies and rejects the input
	require.Error(t, err)
	assert.True(t, errors.Is(err, sim.ErrConfig))
	assert.NotContains(t, out.String(), "END OF SIMULATION")
}

func TestRunCommand_MissingInput_ConfigError(t *testing.T) {
	setupCLI(t, nil)
	rootCmd.SetArgs([]string{"run"})

	err := rootCmd.Execute()

	assert.True(t, errors.Is(err, sim.ErrConfig))
}

func TestRunCommand_InvalidLogLevel_ConfigError(t *testing.T) {
	setupCLI(t, map[string]string{"/in.txt": "0\n"})
	rootCmd.SetArgs([]string{"run", "--input", "/in.txt", "--log", "chatty"})

	err := rootCmd.Execute()

	assert.True(t, errors.Is(err, sim.ErrConfig))
}

func TestValidateCommand_ValidInput_ReportsCount(t *testing.T) {
	// GIVEN a valid input file
	_, out := setupCLI(t, map[string]string{"/in.txt": threeCustomers})
	rootCmd.SetArgs([]string{"validate", "--input", "/in.txt"})

	// WHEN validated
	err := rootCmd.Execute()

	// THEN nothing runs and the count is reported
	require.NoError(t, err)
	assert.Equal(t, "/in.txt: 3 customers OK\n", out.String())
}

func TestValidateCommand_MalformedInput_Fails(t *testing.T) {
	setupCLI(t, map[string]string{"/in.txt": "2\n1:0,1,1\n1:0,1,1\n"})
	rootCmd.SetArgs([]string{"validate", "--input", "/in.txt"})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.True(t, errors.Is(err, sim.ErrConfig))
}
