package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	sim "github.com/clerk-sim/clerk-sim/sim"
	"github.com/clerk-sim/clerk-sim/sim/trace"
	"github.com/clerk-sim/clerk-sim/sim/workload"
)

// appFs is the filesystem inputs, configs and traces are read from and written to.
var appFs = afero.NewOsFs()

var (
	// CLI flags
	inputPath    string        // Customer file (text or YAML)
	configPath   string        // Optional YAML run config
	tick         time.Duration // Wall length of one input time unit
	maxCustomers int           // Customer limit (0 = unlimited)
	logLevel     string        // Log verbosity level
	traceLevel   string        // Trace verbosity: none, services, events
	traceOutput  string        // File to write the YAML trace to
	showProgress bool          // Render per-customer progress bars
	showSummary  bool          // Print metrics after the run
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:           "clerk-sim",
	Short:         "Priority-preemptive single-clerk queue simulator",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// runCmd executes the simulation using parameters from the config file and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the clerk simulation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveRunConfig(cmd)
		if err != nil {
			return err
		}
		return runSimulation(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

// validateCmd parses the input without scheduling anyone
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a customer file and report what would be simulated",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveRunConfig(cmd)
		if err != nil {
			return err
		}
		customers, err := loadInput()
		if err != nil {
			return err
		}
		if err := cfg.SimConfig().Validate(customers); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d customers OK\n", inputPath, len(customers))
		return nil
	},
}

// resolveRunConfig layers explicitly set flags over the config file over defaults,
// and configures logging.
func resolveRunConfig(cmd *cobra.Command) (RunConfig, error) {
	cfg := DefaultRunConfig()
	if configPath != "" {
		loaded, err := loadRunConfig(appFs, configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	flags := cmd.Flags()
	if flags.Changed("tick") {
		cfg.Tick = tick
	}
	if flags.Changed("max-customers") {
		cfg.MaxCustomers = maxCustomers
	}
	if flags.Changed("log") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("trace") {
		cfg.TraceLevel = traceLevel
	}
	if flags.Changed("trace-out") {
		cfg.TraceOutput = traceOutput
	}
	if flags.Changed("progress") {
		cfg.Progress = showProgress
	}
	if flags.Changed("summary") {
		cfg.Summary = showSummary
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return cfg, errors.Wrapf(sim.ErrConfig, "invalid log level %q", cfg.LogLevel)
	}
	logrus.SetLevel(level)

	if inputPath == "" {
		return cfg, errors.Wrap(sim.ErrConfig, "no input file given (use --input)")
	}
	return cfg, nil
}

func loadInput() ([]*sim.Customer, error) {
	return workload.LoadCustomers(appFs, inputPath)
}

// runSimulation loads customers, runs the simulator and reports the outcome.
func runSimulation(cfg RunConfig, stdout, stderr io.Writer) error {
	customers, err := loadInput()
	if err != nil {
		return err
	}

	sinks := sim.MultiSink{newConsoleSink(stdout)}
	var progress *progressSink
	if cfg.Progress {
		progress = newProgressSink(stderr)
		sinks = append(sinks, progress)
	}

	s, err := sim.NewSimulator(cfg.SimConfig(), customers, sinks)
	if err != nil {
		return err
	}
	for _, c := range customers {
		logrus.Debugf("customer %2d: arrival %d, service %d, priority %d", c.ID, c.ArrivalTime, c.ServiceTime, c.Priority)
	}
	logrus.Infof("Starting simulation %s with %d customers, tick=%v", s.RunID, len(customers), cfg.Tick)

	runErr := s.Run()
	if progress != nil {
		progress.Wait()
	}
	fmt.Fprintln(stdout, "\n###### END OF SIMULATION ######")

	if cfg.Summary && s.Metrics != nil {
		s.Metrics.Print(stdout)
	}
	if cfg.TraceOutput != "" && cfg.TraceLevel != string(trace.TraceLevelNone) {
		if err := writeTrace(s.Trace, cfg.TraceOutput); err != nil {
			logrus.Errorf("could not write trace: %v", err)
			if runErr == nil {
				runErr = err
			}
		}
	}
	if runErr != nil {
		return runErr
	}
	logrus.Info("Simulation complete.")
	return nil
}

func writeTrace(st *trace.SimulationTrace, path string) error {
	f, err := appFs.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating trace file %s", path)
	}
	defer f.Close()
	return st.WriteYAML(f)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	defaults := DefaultRunConfig()
	for _, c := range []*cobra.Command{runCmd, validateCmd} {
		c.Flags().StringVarP(&inputPath, "input", "i", "", "Customer file: 'N' then N lines 'ID:arrival,service,priority' (or a .yaml workload)")
		c.Flags().StringVar(&configPath, "config", "", "YAML run configuration file")
		c.Flags().IntVar(&maxCustomers, "max-customers", defaults.MaxCustomers, "Maximum number of customers accepted (0 = unlimited)")
		c.Flags().StringVar(&logLevel, "log", defaults.LogLevel, "Log level (trace, debug, info, warn, error, fatal, panic)")
	}

	runCmd.Flags().DurationVar(&tick, "tick", defaults.Tick, "Wall length of one input time unit")
	runCmd.Flags().StringVar(&traceLevel, "trace", defaults.TraceLevel, "Trace level (none, services, events)")
	runCmd.Flags().StringVar(&traceOutput, "trace-out", "", "Write the trace as YAML to this file")
	runCmd.Flags().BoolVar(&showProgress, "progress", defaults.Progress, "Render per-customer progress bars on stderr")
	runCmd.Flags().BoolVar(&showSummary, "summary", defaults.Summary, "Print run metrics after the simulation")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
}
