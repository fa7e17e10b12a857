// Package route orders store visits and aggregates route statistics.
package route

import (
	"github.com/sells-group/cafe-scout/internal/geo"
	"github.com/sells-group/cafe-scout/internal/model"
)

// Optimize orders stores into a visiting sequence using the greedy
// nearest-neighbor heuristic: starting from origin, repeatedly visit the
// closest unvisited store. Ties go to the store appearing earliest in the
// input, which makes the result deterministic for identical input order.
//
// The result is always a permutation of the input: same length, no drops,
// no duplicates. Runs in O(n^2) distance evaluations, which is fine for the
// store counts this tool handles. The route is a heuristic, not an optimum.
func Optimize(origin geo.Coordinate, stores []model.Store) []model.Store {
	if len(stores) == 0 {
		return []model.Store{}
	}

	remaining := make([]model.Store, len(stores))
	copy(remaining, stores)

	result := make([]model.Store, 0, len(stores))
	current := origin

	for len(remaining) > 0 {
		best := 0
		bestDist := geo.Distance(current, remaining[0].Coordinates)
		for i := 1; i < len(remaining); i++ {
			// Strict less keeps the earliest-input store on ties.
			if d := geo.Distance(current, remaining[i].Coordinates); d < bestDist {
				best = i
				bestDist = d
			}
		}

		next := remaining[best]
		result = append(result, next)
		current = next.Coordinates
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	return result
}
