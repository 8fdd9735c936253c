// Package display is the console presentation adapter. It logs every
// observer event and periodically prints a status line built from the
// dispatcher's published state.
package display

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"liftsim/src/dispatcher"
	"liftsim/src/spawner"
	"liftsim/src/timer"
	"liftsim/src/types"
)

// Console implements types.Observer. It is safe for concurrent use.
type Console struct {
	out      io.Writer
	arrivals atomic.Uint64
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) OnArrive(floor int) {
	c.arrivals.Add(1)
	slog.Info("Cabin arrived", "floor", floor)
}

func (c *Console) OnBoard(req types.Request) {
	slog.Info("Passenger boarded", "request", req)
}

func (c *Console) OnAlight(req types.Request) {
	slog.Info("Passenger delivered", "request", req)
}

func (c *Console) OnQueueChanged(floor int) {
	slog.Debug("Queue changed", "floor", floor)
}

// Run prints a status line every interval on clock until ctx is done.
func (c *Console) Run(ctx context.Context, clock timer.Clock, interval time.Duration, state func() dispatcher.State, stats func() spawner.Stats) error {
	for {
		if err := timer.Sleep(ctx, clock, interval); err != nil {
			fmt.Fprintln(c.out)
			return err
		}
		fmt.Fprintf(c.out, "\r%s", StatusLine(state(), stats()))
	}
}

// StatusLine renders the cabin and per-floor queue lengths, for example:
//
//	floor 2 up loading [2/4] | 0:1/0 1:0/2 2:0/0 | spawned 9 shed 0 delivered 4
func StatusLine(s dispatcher.State, st spawner.Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "floor %d %s %s [%d/%d] |", s.Floor, s.Dir, s.Behaviour, len(s.Passengers), s.Capacity)
	for floor, q := range s.Queues {
		fmt.Fprintf(&b, " %d:%d/%d", floor, len(q.Up), len(q.Down))
	}
	fmt.Fprintf(&b, " | spawned %d shed %d delivered %d", st.Spawned, st.Shed, s.Delivered)
	return b.String()
}

// Arrivals is the number of arrivals seen so far.
func (c *Console) Arrivals() uint64 { return c.arrivals.Load() }
