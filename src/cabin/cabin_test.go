package cabin

import (
	"context"
	"testing"
	"time"

	"liftsim/src/config"
	"liftsim/src/timer"
	"liftsim/src/types"
)

// recordingClock fires immediately and remembers every requested wait.
type recordingClock struct {
	waits []time.Duration
}

func (c *recordingClock) After(d time.Duration) <-chan time.Time {
	c.waits = append(c.waits, d)
	return timer.InstantClock{}.After(d)
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.NumFloors = 5
	cfg.Capacity = 2
	cfg.StartFloor = 1
	cfg.PerFloorDuration = 100 * time.Millisecond
	return cfg
}

func TestNewCabin(t *testing.T) {
	c := New(testConfig(), timer.InstantClock{}, nil)
	if c.Floor() != 1 || c.Behaviour() != types.Idle || !c.Empty() || c.Space() != 2 {
		t.Fatalf("unexpected initial cabin: floor=%d behaviour=%s count=%d", c.Floor(), c.Behaviour(), c.Count())
	}
}

func TestMoveToCurrentFloorIsNoop(t *testing.T) {
	clock := &recordingClock{}
	c := New(testConfig(), clock, nil)
	c.SetLoading()

	if err := c.MoveTo(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if c.Floor() != 1 || c.Target() != 1 || c.Behaviour() != types.Loading {
		t.Errorf("state changed: floor=%d target=%d behaviour=%s", c.Floor(), c.Target(), c.Behaviour())
	}
	if len(clock.waits) != 0 {
		t.Errorf("no-op move waited %v", clock.waits)
	}
}

func TestMoveToWaitsProportionalToDistance(t *testing.T) {
	clock := &recordingClock{}
	c := New(testConfig(), clock, nil)

	if err := c.MoveTo(context.Background(), 4); err != nil {
		t.Fatal(err)
	}
	if c.Floor() != 4 || c.Behaviour() != types.Idle {
		t.Fatalf("after move: floor=%d behaviour=%s", c.Floor(), c.Behaviour())
	}
	if err := c.MoveTo(context.Background(), 2); err != nil {
		t.Fatal(err)
	}
	want := []time.Duration{300 * time.Millisecond, 200 * time.Millisecond}
	if len(clock.waits) != 2 || clock.waits[0] != want[0] || clock.waits[1] != want[1] {
		t.Errorf("waits = %v, want %v", clock.waits, want)
	}
}

func TestMoveToClampsOutOfRange(t *testing.T) {
	c := New(testConfig(), timer.InstantClock{}, nil)
	if err := c.MoveTo(context.Background(), 17); err != nil {
		t.Fatal(err)
	}
	if c.Floor() != 4 {
		t.Errorf("floor = %d, want clamp to 4", c.Floor())
	}
	if err := c.MoveTo(context.Background(), -3); err != nil {
		t.Fatal(err)
	}
	if c.Floor() != 0 {
		t.Errorf("floor = %d, want clamp to 0", c.Floor())
	}
	if c.Distance(99) != 4 {
		t.Errorf("Distance(99) = %d, want 4", c.Distance(99))
	}
}

func TestMoveToCustomTravel(t *testing.T) {
	clock := &recordingClock{}
	c := New(testConfig(), clock, func(distance int) time.Duration {
		return time.Duration(distance) * time.Minute
	})
	if err := c.MoveTo(context.Background(), 3); err != nil {
		t.Fatal(err)
	}
	if len(clock.waits) != 1 || clock.waits[0] != 2*time.Minute {
		t.Errorf("waits = %v, want [2m]", clock.waits)
	}
}

type stuckClock struct{}

func (stuckClock) After(time.Duration) <-chan time.Time { return nil }

func TestMoveToCancelledAtShutdown(t *testing.T) {
	c := New(testConfig(), stuckClock{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.MoveTo(ctx, 3) }()
	cancel()
	if err := <-done; err == nil {
		t.Fatal("expected context error")
	}
	if c.Floor() != 1 || c.Behaviour() != types.Moving || c.Target() != 3 {
		t.Errorf("cancelled move: floor=%d target=%d behaviour=%s", c.Floor(), c.Target(), c.Behaviour())
	}
}

func TestBoardRespectsCapacity(t *testing.T) {
	c := New(testConfig(), timer.InstantClock{}, nil)
	reqs := []types.Request{
		types.NewRequest(1, 1, 3),
		types.NewRequest(2, 1, 4),
		types.NewRequest(3, 1, 2),
	}
	if err := c.Board(reqs); err == nil {
		t.Fatal("boarding 3 into capacity 2 should fail")
	}
	if !c.Empty() {
		t.Fatal("rejected batch partially boarded")
	}
	if err := c.Board(reqs[:2]); err != nil {
		t.Fatal(err)
	}
	if c.Space() != 0 {
		t.Errorf("space = %d, want 0", c.Space())
	}
	if err := c.Board(reqs[2:]); err == nil {
		t.Error("boarding into a full cabin should fail")
	}
}

func TestAlightOnlyAtDestination(t *testing.T) {
	cfg := testConfig()
	cfg.Capacity = 4
	c := New(cfg, timer.InstantClock{}, nil)
	if err := c.Board([]types.Request{
		types.NewRequest(1, 1, 3),
		types.NewRequest(2, 1, 4),
		types.NewRequest(3, 1, 3),
	}); err != nil {
		t.Fatal(err)
	}

	if got := c.Alight(); len(got) != 0 {
		t.Fatalf("alighted %v at origin", got)
	}
	if err := c.MoveTo(context.Background(), 3); err != nil {
		t.Fatal(err)
	}
	dropped := c.Alight()
	if len(dropped) != 2 || dropped[0].ID != 1 || dropped[1].ID != 3 {
		t.Fatalf("dropped %v, want #1 and #3", dropped)
	}
	left := c.Passengers()
	if len(left) != 1 || left[0].ID != 2 {
		t.Fatalf("remaining %v, want #2", left)
	}
}
