package route

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/cafe-scout/internal/geo"
	"github.com/sells-group/cafe-scout/internal/model"
	"github.com/sells-group/cafe-scout/internal/transit"
)

// Mode selects how leg travel times are estimated.
type Mode string

// Travel modes.
const (
	ModeWalking Mode = "walking"
	ModeTransit Mode = "transit"
	ModeMixed   Mode = "mixed"
)

// transitLegThresholdMiles is the leg distance above which transit is
// preferred over walking in transit and mixed modes.
const transitLegThresholdMiles = 0.5

// Calculator aggregates distance, time, and cost over an ordered route.
type Calculator struct {
	estimator *transit.Estimator
}

// NewCalculator creates a Calculator. A nil estimator means every leg is
// walked regardless of mode.
func NewCalculator(estimator *transit.Estimator) *Calculator {
	return &Calculator{estimator: estimator}
}

// Stats computes aggregate statistics for an ordered route starting at
// origin. It returns nil for an empty route: "no route" is distinct from a
// zero-length one. Legs longer than the threshold use the transit estimate
// when one is available and fall back to walking otherwise; each transit leg
// pays the flat fare.
func (c *Calculator) Stats(origin geo.Coordinate, stores []model.Store, mode Mode) *model.RouteStats {
	if len(stores) == 0 {
		return nil
	}

	stats := &model.RouteStats{StopCount: len(stores)}

	prev := origin
	for _, s := range stores {
		legMiles := geo.Distance(prev, s.Coordinates)
		stats.TotalDistanceMiles += legMiles

		minutes, cost := c.legTimeAndCost(prev, s.Coordinates, legMiles, mode)
		stats.TotalTimeMinutes += minutes
		stats.TotalCost += cost

		prev = s.Coordinates
	}

	return stats
}

// legTimeAndCost returns the travel time in minutes and the monetary cost
// for one leg under the given mode.
func (c *Calculator) legTimeAndCost(from, to geo.Coordinate, legMiles float64, mode Mode) (float64, float64) {
	if mode == ModeWalking || c.estimator == nil || legMiles <= transitLegThresholdMiles {
		return geo.WalkTime(legMiles), 0
	}

	est, err := c.estimator.Estimate(from, to)
	if err != nil {
		if !eris.Is(err, transit.ErrUnavailable) {
			zap.L().Warn("route: transit estimate failed", zap.Error(err))
		}
		return geo.WalkTime(legMiles), 0
	}

	return est.TotalTimeMinutes, est.Cost
}
