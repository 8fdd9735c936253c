package types

import (
	"errors"
	"fmt"
)

var ErrOriginMismatch = errors.New("request origin does not match floor")

// OutOfRangeError reports a floor index outside [0, NumFloors).
type OutOfRangeError struct {
	Floor     int
	NumFloors int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("floor %d out of range [0, %d)", e.Floor, e.NumFloors)
}

// InvalidTargetError reports a move target that had to be clamped into range.
// It is logged, never returned to the dispatcher.
type InvalidTargetError struct {
	Target  int
	Clamped int
}

func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("move target %d clamped to %d", e.Target, e.Clamped)
}

// CheckFloor returns an *OutOfRangeError when floor is not a valid index.
func CheckFloor(floor, numFloors int) error {
	if floor < 0 || floor >= numFloors {
		return &OutOfRangeError{Floor: floor, NumFloors: numFloors}
	}
	return nil
}
