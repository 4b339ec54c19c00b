package sim

import "fmt"

// GrantFunc resumes a process once it has acquired a resource unit.
// It receives the simulated instant of the grant.
type GrantFunc func(now float64)

// Resource models a capacity-bounded pool of identical servers (operators,
// nurses) with strict FIFO queue discipline. Requests are granted in arrival
// order only; a unit freed by Release goes to the head of the waiting queue at
// the same simulated instant.
//
// The pool never mutates simulation state directly: each grant is scheduled
// through the Simulator as an event, so the scheduler observes every
// grant/release transition and the tie-break order among simultaneous grants
// stays deterministic.
type Resource struct {
	Name     string
	Capacity int

	inUse   int
	waiters []GrantFunc
}

// NewResource creates a pool with the given capacity.
func NewResource(name string, capacity int) (*Resource, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("resource %q: capacity must be > 0, got %d", name, capacity)
	}
	return &Resource{Name: name, Capacity: capacity}, nil
}

// Request enqueues a demand for one unit. The grant callback runs, as a
// scheduled event, once a unit is free and this request has reached the head
// of the FIFO queue.
func (r *Resource) Request(s *Simulator, grant GrantFunc) {
	r.waiters = append(r.waiters, grant)
	r.dispatch(s)
}

// Release frees one unit and immediately grants it to the head of the waiting
// queue, if any, at the current simulated instant. Releasing a unit that was
// never acquired is a fatal internal-consistency failure.
func (r *Resource) Release(s *Simulator) {
	if r.inUse == 0 {
		panic(fmt.Sprintf("resource %q: release without acquire", r.Name))
	}
	r.inUse--
	r.dispatch(s)
}

// dispatch grants units to waiting requests in FIFO order while capacity
// allows. The unit is claimed here, before the grant event fires, so the
// held-count can never exceed capacity even transiently.
func (r *Resource) dispatch(s *Simulator) {
	for r.inUse < r.Capacity && len(r.waiters) > 0 {
		grant := r.waiters[0]
		r.waiters = r.waiters[1:]
		r.inUse++
		s.Schedule(&grantEvent{
			baseEvent: baseEvent{time: s.Clock},
			resource:  r,
			grant:     grant,
		})
	}
}

// InUse returns the number of units currently held.
func (r *Resource) InUse() int {
	return r.inUse
}

// QueueLen returns the number of requests waiting for a unit.
func (r *Resource) QueueLen() int {
	return len(r.waiters)
}
