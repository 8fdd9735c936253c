package spawner

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"liftsim/src/config"
	"liftsim/src/floors"
	"liftsim/src/timer"
	"liftsim/src/types"
)

type Stats struct {
	Spawned uint64
	Shed    uint64
}

// Spawner creates people at random intervals on every floor.
type Spawner struct {
	cfg      config.Config
	registry *floors.Registry
	clock    timer.Clock
	observer types.Observer

	mu  sync.Mutex
	rng *rand.Rand

	nextID  atomic.Uint64
	spawned atomic.Uint64
	shed    atomic.Uint64
}

func New(cfg config.Config, registry *floors.Registry, clock timer.Clock, observer types.Observer, seed uint64) *Spawner {
	if observer == nil {
		observer = types.NopObserver{}
	}
	return &Spawner{
		cfg:      cfg,
		registry: registry,
		clock:    clock,
		observer: observer,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// NewRequest creates a person at origin heading to any other floor, chosen uniformly.
func (s *Spawner) NewRequest(origin int) types.Request {
	s.mu.Lock()
	dest := s.rng.IntN(s.cfg.NumFloors - 1)
	s.mu.Unlock()
	if dest >= origin {
		dest++
	}
	return types.NewRequest(s.nextID.Add(1), origin, dest)
}

// SpawnAt adds a person to floor unless the floor already holds QueueCap people.
// Returns false when the spawn was shed.
func (s *Spawner) SpawnAt(floor int) (types.Request, bool, error) {
	if err := types.CheckFloor(floor, s.registry.NumFloors()); err != nil {
		return types.Request{}, false, err
	}
	if s.registry.Len(floor) >= s.cfg.QueueCap {
		s.shed.Add(1)
		slog.Debug("Floor at queue cap, skipping spawn", "floor", floor, "cap", s.cfg.QueueCap)
		return types.Request{}, false, nil
	}

	// A writer racing on the same floor can fill it between Len and
	// EnqueueBelow; that shed request keeps its ID, leaving a gap in the sequence.
	req := s.NewRequest(floor)
	ok, err := s.registry.EnqueueBelow(floor, req, s.cfg.QueueCap)
	if err != nil {
		return req, false, err
	}
	if !ok {
		s.shed.Add(1)
		return req, false, nil
	}
	s.spawned.Add(1)
	slog.Debug("Person spawned", "request", req)
	s.observer.OnQueueChanged(floor)
	return req, true, nil
}

// Run starts one spawn timer per floor and blocks until ctx is done.
func (s *Spawner) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for floor := 0; floor < s.cfg.NumFloors; floor++ {
		g.Go(func() error {
			return s.runFloor(ctx, floor)
		})
	}
	return g.Wait()
}

func (s *Spawner) runFloor(ctx context.Context, floor int) error {
	for {
		if err := timer.Sleep(ctx, s.clock, s.nextDelay()); err != nil {
			return err
		}
		if _, _, err := s.SpawnAt(floor); err != nil {
			slog.Error("Spawn failed", "floor", floor, "err", err)
		}
	}
}

// nextDelay is uniform in [SpawnIntervalMin, SpawnIntervalMax].
func (s *Spawner) nextDelay() time.Duration {
	span := s.cfg.SpawnIntervalMax - s.cfg.SpawnIntervalMin
	if span <= 0 {
		return s.cfg.SpawnIntervalMin
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.SpawnIntervalMin + time.Duration(s.rng.Int64N(int64(span)+1))
}

func (s *Spawner) Stats() Stats {
	return Stats{Spawned: s.spawned.Load(), Shed: s.shed.Load()}
}
