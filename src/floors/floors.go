package floors

import (
	"log/slog"
	"sync"

	"github.com/tiendc/go-deepcopy"

	"liftsim/src/types"
)

// FloorQueue is a point-in-time copy of one floor's waiting lists.
type FloorQueue struct {
	Up   []types.Request
	Down []types.Request
}

func (q FloorQueue) Len() int { return len(q.Up) + len(q.Down) }

type floorQueues struct {
	mu   sync.Mutex
	up   []types.Request
	down []types.Request
}

func (fq *floorQueues) queue(dir types.Direction) *[]types.Request {
	if dir == types.Up {
		return &fq.up
	}
	return &fq.down
}

// Registry holds the up and down waiting lists of every floor.
// Each floor has its own lock, floors never lock each other.
type Registry struct {
	floors []*floorQueues
}

func New(numFloors int) *Registry {
	r := &Registry{floors: make([]*floorQueues, numFloors)}
	for i := range r.floors {
		r.floors[i] = &floorQueues{}
	}
	return r
}

func (r *Registry) NumFloors() int { return len(r.floors) }

// Enqueue appends req to the queue for its direction at floor.
func (r *Registry) Enqueue(floor int, req types.Request) error {
	_, err := r.EnqueueBelow(floor, req, -1)
	return err
}

// EnqueueBelow appends req only while the floor holds fewer than limit
// requests in total. A negative limit disables the check.
func (r *Registry) EnqueueBelow(floor int, req types.Request, limit int) (bool, error) {
	if err := types.CheckFloor(floor, len(r.floors)); err != nil {
		slog.Error("Rejected request for invalid floor", "floor", floor, "request", req, "err", err)
		return false, err
	}
	if req.Origin != floor {
		slog.Error("Rejected request queued away from its origin", "floor", floor, "request", req)
		return false, types.ErrOriginMismatch
	}

	fq := r.floors[floor]
	fq.mu.Lock()
	defer fq.mu.Unlock()
	if limit >= 0 && len(fq.up)+len(fq.down) >= limit {
		return false, nil
	}
	q := fq.queue(req.Dir)
	*q = append(*q, req)
	return true, nil
}

// PeekDemand reports whether anyone waits at floor. Invalid floors have no demand.
func (r *Registry) PeekDemand(floor int) (hasUp, hasDown bool) {
	if types.CheckFloor(floor, len(r.floors)) != nil {
		return false, false
	}
	fq := r.floors[floor]
	fq.mu.Lock()
	defer fq.mu.Unlock()
	return len(fq.up) > 0, len(fq.down) > 0
}

// HasDemand reports whether floor has anyone waiting to travel in dir.
func (r *Registry) HasDemand(floor int, dir types.Direction) bool {
	hasUp, hasDown := r.PeekDemand(floor)
	if dir == types.Up {
		return hasUp
	}
	return hasDown
}

// DrainBoardable removes up to capacity requests from the front of the dir
// queue at floor, oldest first. Requests beyond capacity stay queued.
func (r *Registry) DrainBoardable(floor int, dir types.Direction, capacity int) []types.Request {
	if capacity <= 0 || types.CheckFloor(floor, len(r.floors)) != nil {
		return nil
	}
	fq := r.floors[floor]
	fq.mu.Lock()
	defer fq.mu.Unlock()

	q := fq.queue(dir)
	n := min(capacity, len(*q))
	if n == 0 {
		return nil
	}
	drained := make([]types.Request, n)
	copy(drained, (*q)[:n])
	*q = append((*q)[:0], (*q)[n:]...)
	return drained
}

// Len is the number of requests waiting at floor in both directions.
func (r *Registry) Len(floor int) int {
	if types.CheckFloor(floor, len(r.floors)) != nil {
		return 0
	}
	fq := r.floors[floor]
	fq.mu.Lock()
	defer fq.mu.Unlock()
	return len(fq.up) + len(fq.down)
}

// Snapshot copies every floor's queues. Floors are copied one at a time, so
// the result is consistent per floor but not across floors.
func (r *Registry) Snapshot() []FloorQueue {
	out := make([]FloorQueue, len(r.floors))
	for i, fq := range r.floors {
		fq.mu.Lock()
		err := deepcopy.Copy(&out[i], &FloorQueue{Up: fq.up, Down: fq.down})
		fq.mu.Unlock()
		if err != nil {
			slog.Error("Failed to copy floor queue", "floor", i, "err", err)
		}
	}
	return out
}
