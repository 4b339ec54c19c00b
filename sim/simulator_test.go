package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/callcentre-sim/callcentre-sim/sim/dist"
	"github.com/callcentre-sim/callcentre-sim/sim/trace"
)

// fixedSpec builds a zero-variance distribution spec.
func fixedSpec(v float64) dist.Spec {
	return dist.Spec{Type: "fixed", Params: map[string]float64{"value": v}}
}

// TestNoQueueingWhenArrivalsMatchServiceExactly: one operator, arrivals every
// 5 minutes, service exactly 5 minutes. Each caller acquires the operator at
// the instant the previous caller releases it, so no waiting ever occurs.
func TestNoQueueingWhenArrivalsMatchServiceExactly(t *testing.T) {
	exp, err := NewExperiment(
		WithOperators(1),
		WithArrivalSpec(fixedSpec(5)),
		WithCallSpec(fixedSpec(5)),
	)
	require.NoError(t, err)

	r, err := SingleRun(exp, 0, 200, nil)
	require.NoError(t, err)

	require.Greater(t, r.CallersHandled, 10)
	for i, w := range exp.Results.WaitingTimes {
		if w != 0 {
			t.Fatalf("caller %d waited %.3f, want 0 (no queueing scenario)", i+1, w)
		}
	}
}

// TestSimultaneousArrivalsServedInSubmissionOrder: one operator, two callers
// at the same instant. The first-submitted caller is served first and the
// second waits for the full service duration.
func TestSimultaneousArrivalsServedInSubmissionOrder(t *testing.T) {
	exp, err := NewExperiment(
		WithOperators(1),
		WithCallSpec(fixedSpec(3)),
	)
	require.NoError(t, err)
	exp.InitResults()

	s, err := NewSimulator(exp, 100, nil)
	require.NoError(t, err)

	first := &Caller{ID: 1, ArrivalTime: 0, State: CallerStateQueued}
	second := &Caller{ID: 2, ArrivalTime: 0, State: CallerStateQueued}
	s.startService(first)
	s.startService(second)
	s.Run()

	require.Equal(t, []float64{0, 3}, exp.Results.WaitingTimes)
	require.Equal(t, CallerStateDone, first.State)
	require.Equal(t, CallerStateDone, second.State)
}

// TestCallbackAlwaysTriggersNurseStage: with callback probability 1.0, every
// caller that completes primary service also goes through the nurse stage.
func TestCallbackAlwaysTriggersNurseStage(t *testing.T) {
	exp, err := NewExperiment(WithCallback(1.0))
	require.NoError(t, err)

	r, err := SingleRun(exp, 0, 300, nil)
	require.NoError(t, err)

	require.Greater(t, r.CallersHandled, 0)
	require.Greater(t, r.Callbacks, 0, "every completed primary service must queue a callback")
	require.Greater(t, exp.Results.TotalNurseDuration, 0.0, "nurse pool busy-time must accumulate")
	require.Greater(t, r.NurseUtil, 0.0)
}

// TestCallbackNeverTriggersAtZeroProbability is the complement: probability
// 0.0 leaves the nurse pool untouched.
func TestCallbackNeverTriggersAtZeroProbability(t *testing.T) {
	exp, err := NewExperiment(WithCallback(0.0))
	require.NoError(t, err)

	r, err := SingleRun(exp, 0, 300, nil)
	require.NoError(t, err)

	require.Greater(t, r.CallersHandled, 0)
	require.Zero(t, r.Callbacks)
	require.Zero(t, exp.Results.TotalNurseDuration)
}

// TestWaitingTimeRecordedOncePerCaller: the number of waiting-time
// observations equals the number of service_start transitions.
func TestWaitingTimeRecordedOncePerCaller(t *testing.T) {
	exp, err := NewExperiment()
	require.NoError(t, err)

	tr := trace.New(trace.Config{Enabled: true})
	_, err = SingleRun(exp, 0, 200, tr)
	require.NoError(t, err)

	starts := tr.ForStage(trace.StageServiceStart)
	require.Len(t, exp.Results.WaitingTimes, len(starts))
}

// TestHeldOperatorsNeverExceedCapacity reconstructs the number of operators
// held at every instant from the trace and checks it stays within capacity,
// under heavy load (2 operators against the default arrival rate).
func TestHeldOperatorsNeverExceedCapacity(t *testing.T) {
	exp, err := NewExperiment(WithOperators(2))
	require.NoError(t, err)

	tr := trace.New(trace.Config{Enabled: true})
	_, err = SingleRun(exp, 0, 500, tr)
	require.NoError(t, err)

	held := 0
	for _, rec := range tr.Records {
		switch rec.Stage {
		case trace.StageServiceStart:
			held++
		case trace.StageServiceEnd:
			held--
		}
		if held > exp.NOperators {
			t.Fatalf("%d operators held at clock %.3f, capacity is %d", held, rec.Clock, exp.NOperators)
		}
		if held < 0 {
			t.Fatalf("service_end without matching service_start at clock %.3f", rec.Clock)
		}
	}
}

// TestTraceClockIsMonotone: records appear in nondecreasing clock order.
func TestTraceClockIsMonotone(t *testing.T) {
	exp, err := NewExperiment(WithCallback(1.0))
	require.NoError(t, err)

	tr := trace.New(trace.Config{Enabled: true})
	_, err = SingleRun(exp, 0, 300, tr)
	require.NoError(t, err)
	require.NotEmpty(t, tr.Records)

	prev := 0.0
	for _, rec := range tr.Records {
		require.GreaterOrEqual(t, rec.Clock, prev)
		prev = rec.Clock
	}
}
