// Package metrics provides Prometheus observability for simulation runs.
// The simulator is a batch tool, so metrics are either scraped from a
// temporary endpoint or pushed to a Pushgateway after the run completes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/callcentre-sim/callcentre-sim/sim"
)

// Registry is the custom prometheus registry for the simulator.
var Registry = prometheus.NewRegistry()

// factory registers metrics to our custom Registry directly.
var factory = promauto.With(Registry)

// MeanWaitingTime is the mean caller waiting time across replications, in minutes.
var MeanWaitingTime = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "callsim",
	Name:      "mean_waiting_time_minutes",
	Help:      "Mean caller waiting time across replications in minutes",
})

// OperatorUtilization is the mean operator pool utilization across replications.
var OperatorUtilization = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "callsim",
	Name:      "operator_utilization_percent",
	Help:      "Mean operator utilization across replications as a percentage",
})

// NurseMeanWaitingTime is the mean nurse callback waiting time across replications.
var NurseMeanWaitingTime = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "callsim",
	Name:      "nurse_mean_waiting_time_minutes",
	Help:      "Mean nurse callback waiting time across replications in minutes",
})

// NurseUtilization is the mean nurse pool utilization across replications.
var NurseUtilization = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "callsim",
	Name:      "nurse_utilization_percent",
	Help:      "Mean nurse utilization across replications as a percentage",
})

// CallersHandled is the total number of callers answered across replications.
var CallersHandled = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "callsim",
	Name:      "callers_handled_total",
	Help:      "Total callers answered across all replications",
})

// ReplicationsCompleted counts finished replications.
var ReplicationsCompleted = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "callsim",
	Name:      "replications_completed_total",
	Help:      "Number of completed replications",
})

// RunDurationSeconds tracks wall-clock time per multi-replication run.
var RunDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "callsim",
	Name:      "run_duration_seconds",
	Help:      "Wall-clock time taken by a multi-replication run",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0},
})

// ObserveRun publishes the outcome of a multi-replication run.
func ObserveRun(results []sim.RunResult, summary sim.ReplicationSummary, wallSeconds float64) {
	MeanWaitingTime.Set(summary.WaitingTime.Mean)
	OperatorUtilization.Set(summary.OperatorUtil.Mean)
	NurseMeanWaitingTime.Set(summary.NurseWait.Mean)
	NurseUtilization.Set(summary.NurseUtil.Mean)
	for _, r := range results {
		CallersHandled.Add(float64(r.CallersHandled))
		ReplicationsCompleted.Inc()
	}
	RunDurationSeconds.Observe(wallSeconds)
}
