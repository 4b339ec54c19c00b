package cmd

import (
	"fmt"
	"math"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/callcentre-sim/callcentre-sim/metrics"
	"github.com/callcentre-sim/callcentre-sim/sim"
	"github.com/callcentre-sim/callcentre-sim/sim/trace"
)

var (
	// Run control flags
	randomNumberSet int64   // Base random number set for single-run reproduction
	rcPeriod        float64 // Results collection period (simulated minutes)
	nReps           int     // Number of independent replications
	logLevel        string  // Log verbosity level
	traceEnabled    bool    // Emit per-event trace lines

	// Scenario parameter flags
	nOperators     int     // Operator pool capacity
	nNurses        int     // Nurse pool capacity
	meanIAT        float64 // Mean call inter-arrival time (minutes)
	callLow        float64 // Triangular call duration: low
	callMode       float64 // Triangular call duration: mode
	callHigh       float64 // Triangular call duration: high
	withCallback   bool    // Enable the nurse call-back stage
	chanceCallback float64 // Bernoulli probability of a callback
	nurseLow       float64 // Uniform nurse consult duration: low
	nurseHigh      float64 // Uniform nurse consult duration: high

	// Batch metrics flags
	metricsAddr string // Address to expose Prometheus metrics (e.g., :9090)
	pushURL     string // Pushgateway URL to push metrics to
	waitScrape  bool   // Keep process alive after completion for scraping
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "callcentre-sim",
	Short: "Discrete-event simulator for urgent-care call centres",
}

// runCmd executes one experiment using parameters from CLI flags.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the call centre simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		opts := []sim.Option{
			sim.WithOperators(nOperators),
			sim.WithNurses(nNurses),
			sim.WithMeanIAT(meanIAT),
			sim.WithCallDuration(callLow, callMode, callHigh),
			sim.WithRandomNumberSet(randomNumberSet),
		}
		if withCallback {
			opts = append(opts,
				sim.WithCallback(chanceCallback),
				sim.WithNurseConsult(nurseLow, nurseHigh),
			)
		}
		exp, err := sim.NewExperiment(opts...)
		if err != nil {
			logrus.Fatalf("Invalid experiment configuration: %v", err)
		}

		logrus.Infof("Starting simulation: %d operators, %d nurses, horizon=%.0f min, %d replications",
			nOperators, nNurses, rcPeriod, nReps)

		startMetricsServer()
		startTime := time.Now()

		var results []sim.RunResult
		if traceEnabled && nReps == 1 {
			// Single traced run: replication index equals the random number set.
			tr := trace.New(trace.Config{Enabled: true, Emit: true})
			r, runErr := sim.SingleRun(exp, randomNumberSet, rcPeriod, tr)
			if runErr != nil {
				logrus.Fatalf("Run failed: %v", runErr)
			}
			r.Rep = 1
			results = []sim.RunResult{r}
		} else {
			if results, err = sim.MultipleReplications(exp, rcPeriod, nReps); err != nil {
				logrus.Fatalf("Run failed: %v", err)
			}
		}

		summary := sim.Summarize(results)
		metrics.ObserveRun(results, summary, time.Since(startTime).Seconds())
		printResults(results, summary, exp.WithCallback)

		finishMetrics()
		logrus.Info("Simulation complete.")
	},
}

// setupLogging configures logrus from the --log flag.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// startMetricsServer exposes the Prometheus registry when requested.
func startMetricsServer() {
	if metricsAddr == "" {
		return
	}
	go func() {
		http.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
		logrus.Infof("Metrics server listening on %s/metrics", metricsAddr)
		if err := http.ListenAndServe(metricsAddr, nil); err != nil {
			logrus.Errorf("Metrics server error: %v", err)
		}
	}()
}

// finishMetrics pushes to the Pushgateway or keeps the process alive for a
// final scrape, the usual choices for a batch job.
func finishMetrics() {
	if pushURL != "" {
		if err := push.New(pushURL, "callcentre_sim").Gatherer(metrics.Registry).Push(); err != nil {
			logrus.Errorf("Error pushing to Pushgateway: %v", err)
		} else {
			logrus.Info("Metrics pushed to Pushgateway")
		}
	}
	if waitScrape && metricsAddr != "" {
		logrus.Info("Process kept alive for metric scraping. Press Ctrl+C to exit.")
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
	}
}

// printResults writes the per-replication table and summary to stdout.
func printResults(results []sim.RunResult, summary sim.ReplicationSummary, callback bool) {
	fmt.Println("=== Replication Results ===")
	if callback {
		fmt.Println("rep | mean_wait (min) | operator_util (%) | nurse_wait (min) | nurse_util (%)")
		for _, r := range results {
			fmt.Printf("%3d | %15s | %17.2f | %16s | %14.2f\n",
				r.Rep, fmtMean(r.MeanWaitingTime), r.OperatorUtil,
				fmtMean(r.NurseMeanWaitingTime), r.NurseUtil)
		}
	} else {
		fmt.Println("rep | mean_wait (min) | operator_util (%)")
		for _, r := range results {
			fmt.Printf("%3d | %15s | %17.2f\n", r.Rep, fmtMean(r.MeanWaitingTime), r.OperatorUtil)
		}
	}

	fmt.Println("=== Summary ===")
	fmt.Printf("Mean waiting time    : %s min (std %.3f, min %.3f, max %.3f)\n",
		fmtMean(summary.WaitingTime.Mean), summary.WaitingTime.Std,
		summary.WaitingTime.Min, summary.WaitingTime.Max)
	fmt.Printf("Operator utilization : %.2f%% (std %.2f)\n",
		summary.OperatorUtil.Mean, summary.OperatorUtil.Std)
	if callback {
		fmt.Printf("Nurse waiting time   : %s min (std %.3f)\n",
			fmtMean(summary.NurseWait.Mean), summary.NurseWait.Std)
		fmt.Printf("Nurse utilization    : %.2f%% (std %.2f)\n",
			summary.NurseUtil.Mean, summary.NurseUtil.Std)
	}
}

// fmtMean renders a mean that may be NaN (no callers processed) as "n/a".
func fmtMean(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.3f", v)
}

// Execute runs the CLI root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands.
func init() {
	runCmd.Flags().Int64Var(&randomNumberSet, "random-set", 0, "Random number set identifier for run reproduction")
	runCmd.Flags().Float64Var(&rcPeriod, "rc-period", sim.DefaultCollectionPeriod, "Results collection period (simulated minutes)")
	runCmd.Flags().IntVar(&nReps, "replications", 5, "Number of independent replications")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().BoolVar(&traceEnabled, "trace", false, "Emit per-event trace lines (single replication only)")

	runCmd.Flags().IntVar(&nOperators, "operators", sim.DefaultOperators, "Number of call operators")
	runCmd.Flags().IntVar(&nNurses, "nurses", sim.DefaultNurses, "Number of nurses for callbacks")
	runCmd.Flags().Float64Var(&meanIAT, "mean-iat", sim.DefaultMeanIAT, "Mean call inter-arrival time (minutes)")
	runCmd.Flags().Float64Var(&callLow, "call-low", sim.DefaultCallLow, "Triangular call duration low (minutes)")
	runCmd.Flags().Float64Var(&callMode, "call-mode", sim.DefaultCallMode, "Triangular call duration mode (minutes)")
	runCmd.Flags().Float64Var(&callHigh, "call-high", sim.DefaultCallHigh, "Triangular call duration high (minutes)")
	runCmd.Flags().BoolVar(&withCallback, "callback", false, "Enable the nurse call-back stage")
	runCmd.Flags().Float64Var(&chanceCallback, "chance-callback", sim.DefaultChanceCallback, "Probability a caller needs a nurse callback")
	runCmd.Flags().Float64Var(&nurseLow, "nurse-low", sim.DefaultNurseCallLow, "Uniform nurse consult low (minutes)")
	runCmd.Flags().Float64Var(&nurseHigh, "nurse-high", sim.DefaultNurseCallHigh, "Uniform nurse consult high (minutes)")

	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Address to expose Prometheus metrics (e.g., :9090)")
	runCmd.Flags().StringVar(&pushURL, "push-url", "", "Pushgateway URL to push metrics to (e.g., http://localhost:9091)")
	runCmd.Flags().BoolVar(&waitScrape, "wait", false, "Keep process running after completion for metric scraping")

	rootCmd.AddCommand(runCmd)
}
