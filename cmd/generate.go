package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/clerk-sim/clerk-sim/sim/workload"
)

var (
	genSpec   = workload.DefaultGeneratorSpec()
	genOutput string // Output file; stdout when empty
)

// generateCmd writes a seeded random customer file
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a reproducible random customer file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		customers, err := workload.GenerateCustomers(genSpec)
		if err != nil {
			return err
		}
		if genOutput == "" {
			return workload.FormatCustomers(cmd.OutOrStdout(), customers)
		}
		if err := workload.SaveCustomers(appFs, genOutput, customers); err != nil {
			return err
		}
		logrus.Infof("wrote %d customers (seed %d) to %s", len(customers), genSpec.Seed, genOutput)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d customers\n", genOutput, len(customers))
		return nil
	},
}

func init() {
	d := workload.DefaultGeneratorSpec()
	generateCmd.Flags().Int64Var(&genSpec.Seed, "seed", d.Seed, "Seed for the arrival, service and priority RNG streams")
	generateCmd.Flags().IntVar(&genSpec.Count, "count", d.Count, "Number of customers")
	generateCmd.Flags().Float64Var(&genSpec.ArrivalRate, "rate", d.ArrivalRate, "Mean arrivals per tick (Poisson)")
	generateCmd.Flags().Int64Var(&genSpec.ServiceMin, "service-min", d.ServiceMin, "Minimum service demand in ticks")
	generateCmd.Flags().Int64Var(&genSpec.ServiceMax, "service-max", d.ServiceMax, "Maximum service demand in ticks")
	generateCmd.Flags().IntVar(&genSpec.PriorityLevels, "priorities", d.PriorityLevels, "Number of priority levels, drawn from [0, N)")
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "", "Write to this file (.yaml/.yml for YAML); stdout when empty")

	rootCmd.AddCommand(generateCmd)
}
