// Package trace provides per-event trace recording for simulation runs.
// It stores pure data types and has no dependency on the engine: recording a
// trace never affects simulation semantics.
package trace

// Stage identifies which point of a caller's journey a record captures.
type Stage string

const (
	StageArrival       Stage = "arrival"
	StageServiceStart  Stage = "service_start"
	StageServiceEnd    Stage = "service_end"
	StageCallbackStart Stage = "callback_start"
	StageCallbackEnd   Stage = "callback_end"
)

// CallRecord captures a single caller lifecycle transition.
type CallRecord struct {
	CallerID    int
	Stage       Stage
	Clock       float64
	WaitingTime float64 // set on service_start / callback_start records
	Duration    float64 // set on service_end / callback_end records
}
