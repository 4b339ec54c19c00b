// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/callcentre-sim/callcentre-sim/sim/trace"
)

// Simulator owns simulated time, the event queue, the resource pools, and the
// caller processes of one run. Execution is single-threaded and cooperative:
// a suspended process advances only when the scheduler resumes it at a later
// simulated time.
//
// Ordering guarantee: events at distinct times execute in strictly increasing
// time order; events at the identical time execute in first-scheduled order.
// Events scheduled beyond the collection horizon are never executed, so
// processes in flight at the horizon are abandoned, not forcibly completed.
type Simulator struct {
	Clock   float64
	Horizon float64

	EventQueue *EventHeap
	Operators  *Resource
	Nurses     *Resource

	Experiment *Experiment
	Trace      *trace.Trace

	// nextSeq is the per-simulator scheduling counter used as the
	// deterministic tie-break among same-time events.
	nextSeq uint64

	// nextCallerID mints unique increasing caller identifiers.
	nextCallerID int
}

// NewSimulator creates a fresh simulator for one run of the experiment.
// Resource pools are created fresh here and retain no cross-run state.
func NewSimulator(exp *Experiment, horizon float64, tr *trace.Trace) (*Simulator, error) {
	if horizon < 0 {
		return nil, fmt.Errorf("simulator: horizon must be >= 0, got %v", horizon)
	}
	if tr == nil {
		tr = trace.New(trace.Config{})
	}
	operators, err := NewResource("operators", exp.NOperators)
	if err != nil {
		return nil, err
	}
	s := &Simulator{
		Horizon:    horizon,
		EventQueue: NewEventHeap(),
		Operators:  operators,
		Experiment: exp,
		Trace:      tr,
	}
	if exp.WithCallback {
		if s.Nurses, err = NewResource("nurses", exp.NNurses); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Schedule adds an event to the queue, stamping it with the next scheduling
// sequence number. Scheduling into the past is a fatal internal-consistency
// failure: it would silently corrupt the run's statistics.
func (s *Simulator) Schedule(e Event) {
	if e.Time() < s.Clock {
		panic(fmt.Sprintf("scheduled event at %v before current clock %v", e.Time(), s.Clock))
	}
	s.nextSeq++
	e.setSequence(s.nextSeq)
	s.EventQueue.Schedule(e)
}

// StartArrivals schedules the first caller arrival. The arrival process then
// perpetuates itself: each arrival samples the next inter-arrival duration
// and schedules its own successor.
func (s *Simulator) StartArrivals() {
	iat := s.Experiment.ArrivalDist.Sample()
	s.Schedule(NewArrivalEvent(s.Clock + iat))
}

// Run executes events in time order until the queue drains or the next event
// would exceed the collection horizon. Simulated time only moves forward.
func (s *Simulator) Run() {
	for s.EventQueue.Len() > 0 {
		ev := s.EventQueue.PopNext()
		if ev.Time() > s.Horizon {
			break
		}
		if ev.Time() < s.Clock {
			panic(fmt.Sprintf("clock went backwards: %v < %v", ev.Time(), s.Clock))
		}
		s.Clock = ev.Time()
		logrus.Debugf("[t=%09.3f] executing %T", s.Clock, ev)
		ev.Execute(s)
	}
	logrus.Debugf("[t=%09.3f] run ended", s.Clock)
}

// handleArrival mints a new caller, starts its service process, and schedules
// the next arrival.
func (s *Simulator) handleArrival(e *ArrivalEvent) {
	s.nextCallerID++
	caller := &Caller{
		ID:          s.nextCallerID,
		ArrivalTime: e.Time(),
		State:       CallerStateQueued,
	}
	s.Trace.Record(trace.CallRecord{
		CallerID: caller.ID,
		Stage:    trace.StageArrival,
		Clock:    e.Time(),
	})
	s.startService(caller)

	iat := s.Experiment.ArrivalDist.Sample()
	s.Schedule(NewArrivalEvent(e.Time() + iat))
}

// startService runs the first stage of the caller state machine: request an
// operator and suspend until granted. The suspension interval, measured at
// grant time, is the caller's waiting time and is recorded exactly once.
func (s *Simulator) startService(caller *Caller) {
	s.Operators.Request(s, func(now float64) {
		caller.State = CallerStateInService
		wait := now - caller.ArrivalTime
		s.Experiment.Results.RecordWaitingTime(wait)
		s.Trace.Record(trace.CallRecord{
			CallerID:    caller.ID,
			Stage:       trace.StageServiceStart,
			Clock:       now,
			WaitingTime: wait,
		})

		duration := s.Experiment.CallDist.Sample()
		s.Schedule(NewCallEndEvent(now+duration, caller, duration))
	})
}

// handleCallEnd releases the operator, accumulates busy time, and either
// finishes the caller or moves it into the nurse callback stage.
func (s *Simulator) handleCallEnd(e *CallEndEvent) {
	s.Operators.Release(s)
	s.Experiment.Results.AddCallDuration(e.Duration)
	s.Trace.Record(trace.CallRecord{
		CallerID: e.Caller.ID,
		Stage:    trace.StageServiceEnd,
		Clock:    e.Time(),
		Duration: e.Duration,
	})

	if s.Experiment.WithCallback && s.Experiment.CallbackDist.Sample() == 1 {
		s.startCallback(e.Caller, e.Time())
		return
	}
	e.Caller.State = CallerStateDone
}

// startCallback runs the second queued→in-service cycle against the nurse
// pool, recording a second waiting-time observation at grant time.
func (s *Simulator) startCallback(caller *Caller, now float64) {
	caller.State = CallerStateCallbackQueue
	caller.nurseQueuedAt = now
	s.Nurses.Request(s, func(grantTime float64) {
		caller.State = CallerStateInCallback
		wait := grantTime - caller.nurseQueuedAt
		s.Experiment.Results.RecordNurseWaitingTime(wait)
		s.Trace.Record(trace.CallRecord{
			CallerID:    caller.ID,
			Stage:       trace.StageCallbackStart,
			Clock:       grantTime,
			WaitingTime: wait,
		})

		duration := s.Experiment.NurseDist.Sample()
		s.Schedule(NewNurseEndEvent(grantTime+duration, caller, duration))
	})
}

// handleNurseEnd releases the nurse, accumulates nurse busy time, and
// finishes the caller.
func (s *Simulator) handleNurseEnd(e *NurseEndEvent) {
	s.Nurses.Release(s)
	s.Experiment.Results.AddNurseDuration(e.Duration)
	s.Trace.Record(trace.CallRecord{
		CallerID: e.Caller.ID,
		Stage:    trace.StageCallbackEnd,
		Clock:    e.Time(),
		Duration: e.Duration,
	})
	e.Caller.State = CallerStateDone
}
