package sim

import "fmt"

// Results is the per-run accumulator of observations. It is owned exclusively
// by one run, reset exactly once at run start, and read by the replication
// controller only after the scheduler has drained to the collection horizon.
type Results struct {
	// WaitingTimes holds one observation per caller, recorded exactly once
	// at the instant the caller acquires an operator.
	WaitingTimes []float64

	// TotalCallDuration is cumulative operator busy time in minutes.
	TotalCallDuration float64

	// NurseWaitingTimes holds one observation per nurse callback.
	NurseWaitingTimes []float64

	// TotalNurseDuration is cumulative nurse busy time in minutes.
	TotalNurseDuration float64
}

// NewResults creates an empty accumulator.
func NewResults() *Results {
	return &Results{
		WaitingTimes:      make([]float64, 0),
		NurseWaitingTimes: make([]float64, 0),
	}
}

// RecordWaitingTime appends a caller's operator waiting time observation.
func (r *Results) RecordWaitingTime(wait float64) {
	r.WaitingTimes = append(r.WaitingTimes, wait)
}

// AddCallDuration accumulates operator busy time. Totals are monotonically
// non-decreasing within a run; a negative duration indicates a broken clock.
func (r *Results) AddCallDuration(d float64) {
	if d < 0 {
		panic(fmt.Sprintf("results: negative call duration %v", d))
	}
	r.TotalCallDuration += d
}

// RecordNurseWaitingTime appends a caller's nurse waiting time observation.
func (r *Results) RecordNurseWaitingTime(wait float64) {
	r.NurseWaitingTimes = append(r.NurseWaitingTimes, wait)
}

// AddNurseDuration accumulates nurse busy time.
func (r *Results) AddNurseDuration(d float64) {
	if d < 0 {
		panic(fmt.Sprintf("results: negative nurse duration %v", d))
	}
	r.TotalNurseDuration += d
}
