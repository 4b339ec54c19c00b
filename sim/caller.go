package sim

// CallerState tracks a caller's position in its service state machine.
type CallerState string

const (
	CallerStateQueued        CallerState = "QUEUED"
	CallerStateInService     CallerState = "IN_SERVICE"
	CallerStateCallbackQueue CallerState = "CALLBACK_QUEUED"
	CallerStateInCallback    CallerState = "IN_CALLBACK"
	CallerStateDone          CallerState = "DONE"
)

// Caller represents one arriving unit of work: a unique increasing identifier
// and the arrival instant. Callers live only for the duration of their service
// process; observations are aggregated into Results, not retained per caller.
type Caller struct {
	ID          int
	ArrivalTime float64
	State       CallerState

	// nurseQueuedAt marks when the caller joined the nurse queue, used to
	// measure the second waiting-time observation of the extended model.
	nurseQueuedAt float64
}
