package sim

import (
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/callcentre-sim/callcentre-sim/sim/trace"
)

// RunResult is the summary row produced by one replication.
type RunResult struct {
	// Rep is the 1-based replication index.
	Rep int

	// MeanWaitingTime is the mean operator waiting time in minutes.
	// NaN when the run admitted no callers.
	MeanWaitingTime float64

	// OperatorUtil is operator busy time over capacity x horizon, as a
	// percentage.
	OperatorUtil float64

	// CallersHandled is the number of waiting-time observations collected.
	CallersHandled int

	// Nurse stage results; zero-valued for the basic model.
	NurseMeanWaitingTime float64
	NurseUtil            float64
	Callbacks            int
}

// SingleRun performs one fully isolated run of the model: results reset,
// streams re-derived from the replication index, fresh pools and scheduler.
func SingleRun(exp *Experiment, rep int64, rcPeriod float64, tr *trace.Trace) (RunResult, error) {
	exp.InitResults()
	if err := exp.SetRandomNumberSet(rep); err != nil {
		return RunResult{}, err
	}

	s, err := NewSimulator(exp, rcPeriod, tr)
	if err != nil {
		return RunResult{}, err
	}
	s.StartArrivals()
	s.Run()

	res := exp.Results
	out := RunResult{
		MeanWaitingTime: meanOrNaN(res.WaitingTimes),
		OperatorUtil:    utilization("operators", res.TotalCallDuration, exp.NOperators, rcPeriod),
		CallersHandled:  len(res.WaitingTimes),
	}
	if exp.WithCallback {
		out.NurseMeanWaitingTime = meanOrNaN(res.NurseWaitingTimes)
		out.NurseUtil = utilization("nurses", res.TotalNurseDuration, exp.NNurses, rcPeriod)
		out.Callbacks = len(res.NurseWaitingTimes)
	}
	return out, nil
}

// MultipleReplications executes nReps independent runs of the experiment,
// each seeded from its replication index, and returns one summary row per
// replication index 1..N. Replications are order-independent: no state is
// shared between runs.
func MultipleReplications(exp *Experiment, rcPeriod float64, nReps int) ([]RunResult, error) {
	if nReps < 1 {
		return nil, fmt.Errorf("replications: need at least one, got %d", nReps)
	}
	results := make([]RunResult, 0, nReps)
	for rep := 0; rep < nReps; rep++ {
		r, err := SingleRun(exp, int64(rep), rcPeriod, nil)
		if err != nil {
			return nil, fmt.Errorf("replication %d: %w", rep+1, err)
		}
		r.Rep = rep + 1
		results = append(results, r)
	}
	return results, nil
}

// utilization computes percentage utilization and flags the accumulation
// double-counting footgun: with horizon x capacity as the sole upper bound on
// busy time, a value above 100 indicates broken accounting, not load.
func utilization(pool string, busy float64, capacity int, rcPeriod float64) float64 {
	if rcPeriod == 0 {
		return 0
	}
	util := busy / (rcPeriod * float64(capacity)) * 100.0
	if util > 100.0 {
		logrus.Warnf("%s utilization %.2f%% exceeds 100%%; busy-time accounting is suspect", pool, util)
	}
	return util
}

func meanOrNaN(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return stat.Mean(xs, nil)
}

// Summary aggregates one KPI across replications: descriptive statistics
// only, no inference.
type Summary struct {
	Mean  float64
	Std   float64
	Min   float64
	Max   float64
	Count int
}

// NewSummary computes descriptive statistics over values, ignoring NaN
// entries (runs that admitted no callers).
func NewSummary(values []float64) Summary {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return Summary{}
	}
	sort.Float64s(clean)
	s := Summary{
		Mean:  stat.Mean(clean, nil),
		Min:   clean[0],
		Max:   clean[len(clean)-1],
		Count: len(clean),
	}
	if len(clean) > 1 {
		s.Std = stat.StdDev(clean, nil)
	}
	return s
}

// ReplicationSummary holds the descriptive aggregation of a multi-replication
// result set.
type ReplicationSummary struct {
	WaitingTime  Summary
	OperatorUtil Summary
	NurseWait    Summary
	NurseUtil    Summary
}

// Summarize aggregates the per-replication KPI columns.
func Summarize(results []RunResult) ReplicationSummary {
	waits := make([]float64, len(results))
	utils := make([]float64, len(results))
	nurseWaits := make([]float64, len(results))
	nurseUtils := make([]float64, len(results))
	for i, r := range results {
		waits[i] = r.MeanWaitingTime
		utils[i] = r.OperatorUtil
		nurseWaits[i] = r.NurseMeanWaitingTime
		nurseUtils[i] = r.NurseUtil
	}
	return ReplicationSummary{
		WaitingTime:  NewSummary(waits),
		OperatorUtil: NewSummary(utils),
		NurseWait:    NewSummary(nurseWaits),
		NurseUtil:    NewSummary(nurseUtils),
	}
}

// ScenarioResult pairs a named scenario with its replication summary.
type ScenarioResult struct {
	Name    string
	Results []RunResult
	Summary ReplicationSummary
}

// CompareScenarios runs every experiment for nReps replications and returns
// one summary per scenario, ordered by the given name order.
func CompareScenarios(scenarios map[string]*Experiment, order []string, rcPeriod float64, nReps int) ([]ScenarioResult, error) {
	out := make([]ScenarioResult, 0, len(scenarios))
	for _, name := range order {
		exp, ok := scenarios[name]
		if !ok {
			return nil, fmt.Errorf("compare: unknown scenario %q", name)
		}
		results, err := MultipleReplications(exp, rcPeriod, nReps)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", name, err)
		}
		out = append(out, ScenarioResult{
			Name:    name,
			Results: results,
			Summary: Summarize(results),
		})
	}
	return out, nil
}
