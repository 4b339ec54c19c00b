package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/callcentre-sim/callcentre-sim/sim"
)

var (
	scenarioFile string // Path to the YAML scenario definitions
	compareReps  int    // Replications per scenario (0 = file value)
)

// compareCmd runs every scenario in a YAML file and prints a comparison table.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run and compare multiple what-if scenarios",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		if scenarioFile == "" {
			logrus.Fatal("--scenarios flag is required")
		}
		f, err := LoadScenarioFile(scenarioFile)
		if err != nil {
			logrus.Fatalf("Invalid scenario file: %v", err)
		}
		if compareReps > 0 {
			f.Replications = compareReps
		}

		experiments, order, err := BuildScenarios(f)
		if err != nil {
			logrus.Fatalf("Invalid scenario: %v", err)
		}

		logrus.Infof("Comparing %d scenarios, %d replications each, horizon=%.0f min",
			len(order), f.Replications, f.RCPeriod)

		results, err := sim.CompareScenarios(experiments, order, f.RCPeriod, f.Replications)
		if err != nil {
			logrus.Fatalf("Comparison failed: %v", err)
		}

		callback := false
		for _, exp := range experiments {
			if exp.WithCallback {
				callback = true
			}
		}
		printComparison(os.Stdout, results, callback)
	},
}

// printComparison writes one summary row per scenario. Nurse columns are
// included when any compared scenario runs the callback stage.
func printComparison(w io.Writer, results []sim.ScenarioResult, callback bool) {
	fmt.Fprintln(w, "=== Scenario Comparison ===")
	if callback {
		fmt.Fprintln(w, "scenario | mean_wait (min) | std_wait | operator_util (%) | std_util | nurse_wait (min) | nurse_util (%)")
		for _, r := range results {
			fmt.Fprintf(w, "%-8s | %15s | %8.3f | %17.2f | %8.2f | %16s | %14.2f\n",
				r.Name, fmtMean(r.Summary.WaitingTime.Mean), r.Summary.WaitingTime.Std,
				r.Summary.OperatorUtil.Mean, r.Summary.OperatorUtil.Std,
				fmtMean(r.Summary.NurseWait.Mean), r.Summary.NurseUtil.Mean)
		}
		return
	}
	fmt.Fprintln(w, "scenario | mean_wait (min) | std_wait | operator_util (%) | std_util")
	for _, r := range results {
		fmt.Fprintf(w, "%-8s | %15s | %8.3f | %17.2f | %8.2f\n",
			r.Name, fmtMean(r.Summary.WaitingTime.Mean), r.Summary.WaitingTime.Std,
			r.Summary.OperatorUtil.Mean, r.Summary.OperatorUtil.Std)
	}
}

func init() {
	compareCmd.Flags().StringVar(&scenarioFile, "scenarios", "", "YAML file defining the scenarios to compare")
	compareCmd.Flags().IntVar(&compareReps, "replications", 0, "Replications per scenario (overrides file value)")
	compareCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	rootCmd.AddCommand(compareCmd)
}
