// Contains the motion state machine and passenger set of the single cabin.
package cabin

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"liftsim/src/config"
	"liftsim/src/timer"
	"liftsim/src/types"
)

// TravelFunc converts a distance in floors into the time the move takes.
type TravelFunc func(distance int) time.Duration

// Cabin is owned by the dispatcher loop and is not safe for concurrent use.
type Cabin struct {
	numFloors  int
	capacity   int
	floor      int
	target     int
	behaviour  types.Behaviour
	passengers []types.Request
	travel     TravelFunc
	clock      timer.Clock
}

// New places an idle, empty cabin at cfg.StartFloor. A nil travel defaults to cfg.TravelDuration.
func New(cfg config.Config, clock timer.Clock, travel TravelFunc) *Cabin {
	if travel == nil {
		travel = cfg.TravelDuration
	}
	start := clamp(cfg.StartFloor, cfg.NumFloors)
	return &Cabin{
		numFloors:  cfg.NumFloors,
		capacity:   cfg.Capacity,
		floor:      start,
		target:     start,
		behaviour:  types.Idle,
		passengers: make([]types.Request, 0, cfg.Capacity),
		travel:     travel,
		clock:      clock,
	}
}

func (c *Cabin) Floor() int                 { return c.floor }
func (c *Cabin) Target() int                { return c.target }
func (c *Cabin) Behaviour() types.Behaviour { return c.behaviour }
func (c *Cabin) Capacity() int              { return c.capacity }
func (c *Cabin) Count() int                 { return len(c.passengers) }
func (c *Cabin) Empty() bool                { return len(c.passengers) == 0 }
func (c *Cabin) Space() int                 { return c.capacity - len(c.passengers) }

// Passengers returns a copy of the boarded requests in boarding order.
func (c *Cabin) Passengers() []types.Request {
	out := make([]types.Request, len(c.passengers))
	copy(out, c.passengers)
	return out
}

func (c *Cabin) SetLoading() { c.behaviour = types.Loading }
func (c *Cabin) SetIdle()    { c.behaviour = types.Idle }

// Distance is the number of floors between the cabin and the clamped target.
func (c *Cabin) Distance(target int) int {
	d := clamp(target, c.numFloors) - c.floor
	if d < 0 {
		return -d
	}
	return d
}

// MoveTo travels to target and returns once the cabin has arrived.
//   - out-of-range targets are clamped into the building and logged
//   - a move to the current floor changes nothing and returns at once
//   - a move is never preempted; ctx only ends it at shutdown, leaving the cabin Moving
func (c *Cabin) MoveTo(ctx context.Context, target int) error {
	clamped := clamp(target, c.numFloors)
	if clamped != target {
		slog.Warn("Clamping move target", "err", &types.InvalidTargetError{Target: target, Clamped: clamped})
	}
	distance := c.Distance(clamped)
	if distance == 0 {
		return nil
	}

	c.behaviour = types.Moving
	c.target = clamped
	duration := c.travel(distance)
	slog.Debug("Cabin departing", "from", c.floor, "to", clamped, "duration", duration)

	if err := timer.Sleep(ctx, c.clock, duration); err != nil {
		return err
	}

	c.floor = clamped
	c.behaviour = types.Idle
	slog.Debug("Cabin arrived", "floor", c.floor)
	return nil
}

// Alight removes and returns every passenger whose destination is the current floor.
func (c *Cabin) Alight() []types.Request {
	var dropped []types.Request
	remaining := c.passengers[:0]
	for _, p := range c.passengers {
		if p.Destination == c.floor {
			dropped = append(dropped, p)
		} else {
			remaining = append(remaining, p)
		}
	}
	clear(c.passengers[len(remaining):])
	c.passengers = remaining
	return dropped
}

// Board adds reqs to the cabin. The whole batch is refused if it does not fit.
func (c *Cabin) Board(reqs []types.Request) error {
	if len(reqs) > c.Space() {
		return fmt.Errorf("boarding %d requests with %d of %d places free", len(reqs), c.Space(), c.capacity)
	}
	c.passengers = append(c.passengers, reqs...)
	return nil
}

func clamp(floor, numFloors int) int {
	return max(0, min(numFloors-1, floor))
}
