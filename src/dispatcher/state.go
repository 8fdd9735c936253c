package dispatcher

import (
	"log/slog"

	"github.com/tiendc/go-deepcopy"

	"liftsim/src/floors"
	"liftsim/src/types"
)

// State is a copy of the simulation taken at the end of a dispatcher step.
type State struct {
	Floor      int
	Target     int
	Behaviour  types.Behaviour
	Dir        types.Direction
	Capacity   int
	Passengers []types.Request
	Queues     []floors.FloorQueue
	Boarded    uint64
	Delivered  uint64
	Steps      uint64
}

// Waiting is the total number of queued requests across all floors.
func (s State) Waiting() int {
	n := 0
	for _, q := range s.Queues {
		n += q.Len()
	}
	return n
}

// publish stores the current state for Snapshot readers. Passengers and
// Queues are fresh copies, so the stored value shares nothing with the cabin
// or the registry.
func (d *Dispatcher) publish() {
	d.state.Store(&State{
		Floor:      d.cabin.Floor(),
		Target:     d.cabin.Target(),
		Behaviour:  d.cabin.Behaviour(),
		Dir:        d.dir,
		Capacity:   d.cabin.Capacity(),
		Passengers: d.cabin.Passengers(),
		Queues:     d.registry.Snapshot(),
		Boarded:    d.boarded,
		Delivered:  d.delivered,
		Steps:      d.steps,
	})
}

// Snapshot returns a deep copy of the state published by the last completed
// step. Safe from any goroutine; callers may modify the result.
func (d *Dispatcher) Snapshot() State {
	var out State
	s := d.state.Load()
	if s == nil {
		return out
	}
	if err := deepcopy.Copy(&out, s); err != nil {
		slog.Error("Failed to copy dispatcher state", "err", err)
		return State{}
	}
	return out
}
