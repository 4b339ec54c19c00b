// Package sim provides the core discrete-event simulation engine for the
// urgent-care call centre model.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - event.go: Event types that drive the simulation (Arrival, CallEnd, NurseEnd)
//   - simulator.go: The event loop and the caller service state machine
//   - resource.go: The FIFO-fair capacity-bounded pools (operators, nurses)
//
// # Architecture
//
// The sim package holds the engine; supporting concerns live in sub-packages:
//   - sim/dist/: Statistical distributions behind the one-method Distribution interface
//   - sim/trace/: Per-event trace recording
//
// One run wires an Experiment (parameters plus derived sampling streams), a
// fresh Simulator (clock, event heap, pools), and a Results accumulator. The
// replication controller in replication.go repeats runs with re-derived
// streams, one random number set per replication, so runs are statistically
// independent and individually reproducible.
//
// Events scheduled past the collection horizon never execute: callers in
// flight at the horizon are dropped from the statistics. This truncation
// biases waiting-time and utilization estimates downward near the horizon
// edge; it is a documented modeling limitation, not a failure.
package sim
