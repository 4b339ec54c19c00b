package sim

import (
	"fmt"

	"github.com/callcentre-sim/callcentre-sim/sim/dist"
)

// Default experiment parameters for the urgent-care call centre model.
const (
	DefaultOperators = 13
	DefaultNurses    = 10

	// Mean inter-arrival time in minutes (100 calls per hour).
	DefaultMeanIAT = 60.0 / 100.0

	// Triangular call duration parameters in minutes.
	DefaultCallLow  = 5.0
	DefaultCallMode = 7.0
	DefaultCallHigh = 10.0

	// Nurse callback parameters: Bernoulli chance and uniform consult bounds.
	DefaultChanceCallback = 0.4
	DefaultNurseCallLow   = 10.0
	DefaultNurseCallHigh  = 20.0

	// Stream counts: one stream per distribution the model instantiates.
	StreamsBasic    = 2
	StreamsCallback = 4

	// DefaultCollectionPeriod is the default results collection horizon in minutes.
	DefaultCollectionPeriod = 1000.0
)

// Named stream indices. Each distribution consumes exactly one stream.
const (
	streamArrival = iota
	streamCall
	streamCallback
	streamNurse
)

// Experiment holds the immutable-per-run configuration of a scenario plus the
// mutable results handle for the current run. Distributions are rebuilt from a
// fresh stream set at the start of every replication via SetRandomNumberSet;
// re-seeding is mandatory, not optional, to keep replications independent.
type Experiment struct {
	// Resource capacities.
	NOperators int
	NNurses    int

	// Distribution shape parameters.
	MeanIAT        float64
	CallLow        float64
	CallMode       float64
	CallHigh       float64
	ChanceCallback float64
	NurseCallLow   float64
	NurseCallHigh  float64

	// WithCallback enables the nurse call-back stage of the extended model.
	WithCallback bool

	// Optional spec overrides for what-if experimentation. When set, the
	// corresponding distribution is built from the spec instead of the
	// standard family, still consuming the same stream.
	ArrivalSpec *dist.Spec
	CallSpec    *dist.Spec
	NurseSpec   *dist.Spec

	// Sampling control.
	RandomNumberSet int64
	NStreams        int

	// Derived sampling state, rebuilt by SetRandomNumberSet.
	ArrivalDist  dist.Distribution
	CallDist     dist.Distribution
	CallbackDist dist.Distribution
	NurseDist    dist.Distribution

	// Results of the current run.
	Results *Results
}

// NewExperiment constructs an experiment with the model defaults, applies the
// given options, validates the configuration, and derives the initial
// sampling streams.
func NewExperiment(opts ...Option) (*Experiment, error) {
	e := &Experiment{
		NOperators:      DefaultOperators,
		NNurses:         DefaultNurses,
		MeanIAT:         DefaultMeanIAT,
		CallLow:         DefaultCallLow,
		CallMode:        DefaultCallMode,
		CallHigh:        DefaultCallHigh,
		ChanceCallback:  DefaultChanceCallback,
		NurseCallLow:    DefaultNurseCallLow,
		NurseCallHigh:   DefaultNurseCallHigh,
		RandomNumberSet: 0,
		NStreams:        StreamsBasic,
		Results:         NewResults(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := e.initSampling(); err != nil {
		return nil, err
	}
	return e, nil
}

// Option mutates an Experiment during construction.
type Option func(*Experiment)

// WithOperators sets the operator pool capacity.
func WithOperators(n int) Option {
	return func(e *Experiment) { e.NOperators = n }
}

// WithNurses sets the nurse pool capacity.
func WithNurses(n int) Option {
	return func(e *Experiment) { e.NNurses = n }
}

// WithMeanIAT sets the mean inter-arrival time in minutes.
func WithMeanIAT(mean float64) Option {
	return func(e *Experiment) { e.MeanIAT = mean }
}

// WithCallDuration sets the triangular call duration parameters.
func WithCallDuration(low, mode, high float64) Option {
	return func(e *Experiment) {
		e.CallLow, e.CallMode, e.CallHigh = low, mode, high
	}
}

// WithCallback enables the nurse call-back stage. The extended model consumes
// four sampling streams.
func WithCallback(chance float64) Option {
	return func(e *Experiment) {
		e.WithCallback = true
		e.ChanceCallback = chance
		e.NStreams = StreamsCallback
	}
}

// WithNurseConsult sets the uniform nurse consultation bounds.
func WithNurseConsult(low, high float64) Option {
	return func(e *Experiment) {
		e.NurseCallLow, e.NurseCallHigh = low, high
	}
}

// WithRandomNumberSet sets the initial random number set identifier.
func WithRandomNumberSet(n int64) Option {
	return func(e *Experiment) { e.RandomNumberSet = n }
}

// WithStreams overrides the stream count. The count must match the number of
// distributions the model instantiates; initSampling rejects mismatches.
func WithStreams(n int) Option {
	return func(e *Experiment) { e.NStreams = n }
}

// WithArrivalSpec overrides the inter-arrival distribution.
func WithArrivalSpec(spec dist.Spec) Option {
	return func(e *Experiment) { e.ArrivalSpec = &spec }
}

// WithCallSpec overrides the call duration distribution.
func WithCallSpec(spec dist.Spec) Option {
	return func(e *Experiment) { e.CallSpec = &spec }
}

// WithNurseSpec overrides the nurse consultation duration distribution.
func WithNurseSpec(spec dist.Spec) Option {
	return func(e *Experiment) { e.NurseSpec = &spec }
}

// Validate checks every configuration parameter against its valid domain.
// Violations are reported synchronously, never clamped.
func (e *Experiment) Validate() error {
	if e.NOperators <= 0 {
		return fmt.Errorf("experiment: operator count must be > 0, got %d", e.NOperators)
	}
	if e.WithCallback && e.NNurses <= 0 {
		return fmt.Errorf("experiment: nurse count must be > 0, got %d", e.NNurses)
	}
	if e.MeanIAT <= 0 {
		return fmt.Errorf("experiment: mean inter-arrival time must be > 0, got %v", e.MeanIAT)
	}
	if e.CallLow > e.CallMode || e.CallMode > e.CallHigh {
		return fmt.Errorf("experiment: call duration requires low <= mode <= high, got %v/%v/%v",
			e.CallLow, e.CallMode, e.CallHigh)
	}
	if e.ChanceCallback < 0 || e.ChanceCallback > 1 {
		return fmt.Errorf("experiment: callback chance must be in [0, 1], got %v", e.ChanceCallback)
	}
	if e.NurseCallLow > e.NurseCallHigh {
		return fmt.Errorf("experiment: nurse consult requires low <= high, got %v/%v",
			e.NurseCallLow, e.NurseCallHigh)
	}
	return nil
}

// requiredStreams returns the number of distributions the experiment
// instantiates, which must equal NStreams exactly.
func (e *Experiment) requiredStreams() int {
	if e.WithCallback {
		return StreamsCallback
	}
	return StreamsBasic
}

// SetRandomNumberSet replaces the random number set identifier and rebuilds
// the stream set and every distribution. Calling it twice with the same
// identifier yields identical distributions both times; it has no side effect
// beyond replacing the derived sampling state.
func (e *Experiment) SetRandomNumberSet(n int64) error {
	e.RandomNumberSet = n
	return e.initSampling()
}

// initSampling derives one independent sub-seed per distribution and rebuilds
// the sampling objects. A stream-count mismatch would either starve a
// distribution of a seed or leave spare seeds unused; both indicate a
// configuration bug and fail here.
func (e *Experiment) initSampling() error {
	if got, want := e.NStreams, e.requiredStreams(); got != want {
		return fmt.Errorf("experiment: %d streams configured but model instantiates %d distributions", got, want)
	}

	streams, err := NewStreamSet(e.RandomNumberSet, e.NStreams)
	if err != nil {
		return err
	}

	arrivalSpec := dist.Spec{Type: "exponential", Params: map[string]float64{"mean": e.MeanIAT}}
	if e.ArrivalSpec != nil {
		arrivalSpec = *e.ArrivalSpec
	}
	callSpec := dist.Spec{Type: "triangular", Params: map[string]float64{
		"low": e.CallLow, "mode": e.CallMode, "high": e.CallHigh,
	}}
	if e.CallSpec != nil {
		callSpec = *e.CallSpec
	}

	if e.ArrivalDist, err = dist.New(arrivalSpec, streams.Seed(streamArrival)); err != nil {
		return fmt.Errorf("experiment: arrival distribution: %w", err)
	}
	if e.CallDist, err = dist.New(callSpec, streams.Seed(streamCall)); err != nil {
		return fmt.Errorf("experiment: call distribution: %w", err)
	}

	if !e.WithCallback {
		e.CallbackDist = nil
		e.NurseDist = nil
		return nil
	}

	callbackSpec := dist.Spec{Type: "bernoulli", Params: map[string]float64{"p": e.ChanceCallback}}
	nurseSpec := dist.Spec{Type: "uniform", Params: map[string]float64{
		"low": e.NurseCallLow, "high": e.NurseCallHigh,
	}}
	if e.NurseSpec != nil {
		nurseSpec = *e.NurseSpec
	}

	if e.CallbackDist, err = dist.New(callbackSpec, streams.Seed(streamCallback)); err != nil {
		return fmt.Errorf("experiment: callback distribution: %w", err)
	}
	if e.NurseDist, err = dist.New(nurseSpec, streams.Seed(streamNurse)); err != nil {
		return fmt.Errorf("experiment: nurse distribution: %w", err)
	}
	return nil
}

// InitResults resets the results accumulator. Called exactly once at the
// start of each run.
func (e *Experiment) InitResults() {
	e.Results = NewResults()
}
