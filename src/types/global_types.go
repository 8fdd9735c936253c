package types

import "fmt"

type Direction int

const (
	Up   Direction = 1
	Down Direction = -1
)

func (d Direction) Opposite() Direction {
	if d == Up {
		return Down
	}
	return Up
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// DirectionTo is Up when to lies above from, Down otherwise.
func DirectionTo(from, to int) Direction {
	if to > from {
		return Up
	}
	return Down
}

type Behaviour int

const (
	Idle Behaviour = iota
	Moving
	Loading
)

func (b Behaviour) String() string {
	switch b {
	case Idle:
		return "idle"
	case Moving:
		return "moving"
	case Loading:
		return "loading"
	}
	return fmt.Sprintf("Behaviour(%d)", int(b))
}

// Request is one person travelling from Origin to Destination. It is never modified after creation.
type Request struct {
	ID          uint64
	Origin      int
	Destination int
	Dir         Direction
}

func NewRequest(id uint64, origin, destination int) Request {
	return Request{
		ID:          id,
		Origin:      origin,
		Destination: destination,
		Dir:         DirectionTo(origin, destination),
	}
}

func (r Request) String() string {
	return fmt.Sprintf("#%d(%d->%d %s)", r.ID, r.Origin, r.Destination, r.Dir)
}
