package dispatcher

import (
	"liftsim/src/floors"
	"liftsim/src/types"
)

// retarget is called when the cabin is empty at a stop.
//   - keeps dir if someone here waits to travel that way
//   - otherwise turns to the other direction if someone here waits for it
func retarget(registry *floors.Registry, floor int, dir types.Direction) types.Direction {
	hasUp, hasDown := registry.PeekDemand(floor)
	switch dir {
	case types.Up:
		if !hasUp && hasDown {
			return types.Down
		}
	case types.Down:
		if !hasDown && hasUp {
			return types.Up
		}
	}
	return dir
}

// candidates collects every floor the cabin could usefully visit next.
//   - destinations of boarded passengers
//   - floors with waiting requests; with passengers aboard only those waiting in dir
func candidates(registry *floors.Registry, passengers []types.Request, dir types.Direction) []int {
	seen := make([]bool, registry.NumFloors())
	for _, p := range passengers {
		seen[p.Destination] = true
	}
	for floor := range seen {
		if seen[floor] {
			continue
		}
		if len(passengers) == 0 {
			hasUp, hasDown := registry.PeekDemand(floor)
			seen[floor] = hasUp || hasDown
		} else {
			seen[floor] = registry.HasDemand(floor, dir)
		}
	}

	var out []int
	for floor, ok := range seen {
		if ok {
			out = append(out, floor)
		}
	}
	return out
}

// nearestAhead picks the closest candidate strictly ahead of floor in dir.
func nearestAhead(cands []int, floor int, dir types.Direction) (int, bool) {
	best, found := 0, false
	for _, c := range cands {
		switch {
		case dir == types.Up && c > floor:
			if !found || c < best {
				best, found = c, true
			}
		case dir == types.Down && c < floor:
			if !found || c > best {
				best, found = c, true
			}
		}
	}
	return best, found
}

// chooseTarget applies the nearest-request rule: continue in dir while anything
// lies ahead, otherwise reverse. The returned direction is the committed one,
// reversed even when nothing lies ahead after the flip.
func chooseTarget(cands []int, floor int, dir types.Direction) (target int, newDir types.Direction, ok bool) {
	if target, ok := nearestAhead(cands, floor, dir); ok {
		return target, dir, true
	}
	dir = dir.Opposite()
	target, ok = nearestAhead(cands, floor, dir)
	return target, dir, ok
}
