package sim

import "github.com/sirupsen/logrus"

// Event is a pending resumption in simulated time. Each event carries the
// instant it fires at and a scheduling sequence number used to break ties:
// events at the identical instant execute in first-scheduled order.
type Event interface {
	Time() float64
	Sequence() uint64
	Execute(s *Simulator)

	setSequence(seq uint64)
}

// baseEvent provides the common timing fields for all event types.
// The sequence number is assigned by Simulator.Schedule.
type baseEvent struct {
	time float64
	seq  uint64
}

func (e *baseEvent) Time() float64 {
	return e.time
}

func (e *baseEvent) Sequence() uint64 {
	return e.seq
}

func (e *baseEvent) setSequence(seq uint64) {
	e.seq = seq
}

// ArrivalEvent represents one caller arriving at the centre. Executing it
// starts the caller's service process and schedules the next arrival.
type ArrivalEvent struct {
	baseEvent
}

// NewArrivalEvent creates an arrival at the given instant.
func NewArrivalEvent(at float64) *ArrivalEvent {
	return &ArrivalEvent{baseEvent: baseEvent{time: at}}
}

func (e *ArrivalEvent) Execute(s *Simulator) {
	s.handleArrival(e)
}

// grantEvent resumes a process that was waiting on a Resource. It is
// scheduled by the pool at the instant the unit becomes available, so every
// grant transition is observable in the event order.
type grantEvent struct {
	baseEvent
	resource *Resource
	grant    GrantFunc
}

func (e *grantEvent) Execute(s *Simulator) {
	logrus.Debugf("[t=%09.3f] %s unit granted", e.time, e.resource.Name)
	e.grant(e.time)
}

// CallEndEvent fires when an operator finishes a call.
type CallEndEvent struct {
	baseEvent
	Caller   *Caller
	Duration float64
}

// NewCallEndEvent creates a call completion for caller at the given instant.
func NewCallEndEvent(at float64, caller *Caller, duration float64) *CallEndEvent {
	return &CallEndEvent{baseEvent: baseEvent{time: at}, Caller: caller, Duration: duration}
}

func (e *CallEndEvent) Execute(s *Simulator) {
	s.handleCallEnd(e)
}

// NurseEndEvent fires when a nurse finishes a callback consultation.
type NurseEndEvent struct {
	baseEvent
	Caller   *Caller
	Duration float64
}

// NewNurseEndEvent creates a consultation completion for caller at the given instant.
func NewNurseEndEvent(at float64, caller *Caller, duration float64) *NurseEndEvent {
	return &NurseEndEvent{baseEvent: baseEvent{time: at}, Caller: caller, Duration: duration}
}

func (e *NurseEndEvent) Execute(s *Simulator) {
	s.handleNurseEnd(e)
}
