package dispatcher

import (
	"context"
	"log/slog"
	"sync/atomic"

	"liftsim/src/cabin"
	"liftsim/src/config"
	"liftsim/src/floors"
	"liftsim/src/timer"
	"liftsim/src/types"
)

// Dispatcher owns the cabin and decides every stop, boarding and move.
type Dispatcher struct {
	cfg      config.Config
	cabin    *cabin.Cabin
	registry *floors.Registry
	clock    timer.Clock
	observer types.Observer
	dir      types.Direction

	boarded   uint64
	delivered uint64
	steps     uint64
	state     atomic.Pointer[State]
}

func New(cfg config.Config, c *cabin.Cabin, registry *floors.Registry, clock timer.Clock, observer types.Observer) *Dispatcher {
	if observer == nil {
		observer = types.NopObserver{}
	}
	d := &Dispatcher{
		cfg:      cfg,
		cabin:    c,
		registry: registry,
		clock:    clock,
		observer: observer,
		dir:      types.Up,
	}
	d.publish()
	return d
}

// Run repeats Step until ctx is done.
func (d *Dispatcher) Run(ctx context.Context) error {
	slog.Info("Dispatcher started", "floor", d.cabin.Floor(), "floors", d.cfg.NumFloors, "capacity", d.cfg.Capacity)
	for {
		if err := d.Step(ctx); err != nil {
			slog.Info("Dispatcher stopped", "reason", err)
			return err
		}
	}
}

// Step runs one stop-and-decide round:
//  1. drop passengers for this floor, then board waiting requests in the committed direction
//  2. keep the doors open for the dwell time if anyone left or is aboard
//  3. move to the nearest candidate ahead, reversing when nothing lies ahead
//
// The only error is the context error from an interrupted wait.
func (d *Dispatcher) Step(ctx context.Context) error {
	defer func() {
		d.steps++
		d.publish()
	}()

	floor := d.cabin.Floor()
	dropped := d.alight()
	d.board(floor)

	if len(dropped) > 0 || !d.cabin.Empty() {
		d.cabin.SetLoading()
		if err := timer.Sleep(ctx, d.clock, d.cfg.DwellDuration); err != nil {
			return err
		}
	}

	cands := candidates(d.registry, d.cabin.Passengers(), d.dir)
	if len(cands) == 0 {
		d.cabin.SetIdle()
		return timer.Sleep(ctx, d.clock, d.cfg.PollDelay)
	}

	target, dir, ok := chooseTarget(cands, floor, d.dir)
	if dir != d.dir {
		slog.Debug("Reversing direction", "floor", floor, "from", d.dir, "to", dir)
		d.dir = dir
	}
	if !ok {
		d.cabin.SetIdle()
		return timer.Sleep(ctx, d.clock, d.cfg.PollDelay)
	}

	slog.Debug("Moving to next stop", "from", floor, "to", target, "dir", d.dir, "candidates", cands)
	if err := d.cabin.MoveTo(ctx, target); err != nil {
		return err
	}
	d.observer.OnArrive(d.cabin.Floor())
	return nil
}

func (d *Dispatcher) alight() []types.Request {
	dropped := d.cabin.Alight()
	for _, req := range dropped {
		d.delivered++
		slog.Debug("Passenger alighted", "floor", d.cabin.Floor(), "request", req)
		d.observer.OnAlight(req)
	}
	return dropped
}

// board fills the cabin from the committed-direction queue at floor. An empty
// cabin may first turn to whichever direction has demand here.
func (d *Dispatcher) board(floor int) {
	if d.cabin.Empty() {
		if dir := retarget(d.registry, floor, d.dir); dir != d.dir {
			slog.Debug("Empty cabin retargeting", "floor", floor, "from", d.dir, "to", dir)
			d.dir = dir
		}
	}

	reqs := d.registry.DrainBoardable(floor, d.dir, d.cabin.Space())
	if len(reqs) == 0 {
		return
	}
	if err := d.cabin.Board(reqs); err != nil {
		// DrainBoardable is bounded by Space, so this means the cabin and registry disagree.
		slog.Error("Boarding failed, requests lost", "floor", floor, "requests", reqs, "err", err)
		return
	}
	for _, req := range reqs {
		d.boarded++
		slog.Debug("Passenger boarded", "floor", floor, "request", req)
		d.observer.OnBoard(req)
	}
	d.observer.OnQueueChanged(floor)
}
