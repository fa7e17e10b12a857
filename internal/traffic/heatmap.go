package traffic

import (
	"math"

	"github.com/sells-group/cafe-scout/internal/geo"
	"github.com/sells-group/cafe-scout/internal/model"
)

const (
	gridSize      = 10
	metersPerMile = 1609.34

	// Degree-per-mile conversions hardcoded for NYC's latitude. Valid only
	// for deployments near that latitude; do not generalize silently.
	milesPerDegreeLat = 69.0
	milesPerDegreeLng = 54.6

	// saturationDivisor normalizes summed cell contributions into [0, 1].
	saturationDivisor = 5.0
)

// categoryWeights scale each POI's contribution to cell intensity.
var categoryWeights = map[model.Category]float64{
	model.CategoryShopping:      1.5,
	model.CategoryTransport:     2.0,
	model.CategoryOffice:        1.3,
	model.CategoryEducation:     1.2,
	model.CategoryFood:          1.4,
	model.CategoryEntertainment: 1.1,
	model.CategoryPark:          0.8,
	model.CategoryResidential:   0.6,
}

const defaultCategoryWeight = 1.0

// Heatmap builds a sparse 10x10 intensity grid centered on center, spanning
// ±radiusMeters. Each POI within the radius contributes categoryWeight ×
// (1 − normalizedDistance)² to a cell; sums are normalized by the saturation
// divisor, capped at 1, and scaled by the current time multiplier. Cells with
// zero contribution are omitted.
func (s *Scorer) Heatmap(center geo.Coordinate, pois []model.POIRecord, radiusMeters float64) []model.HeatmapPoint {
	radiusMiles := radiusMeters / metersPerMile
	step := radiusMiles * 2 / gridSize
	timeMultiplier := Multiplier(s.clock.Now())

	var points []model.HeatmapPoint
	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			cell := geo.Coordinate{
				Lat: center.Lat + (float64(i)-gridSize/2)*step/milesPerDegreeLat,
				Lng: center.Lng + (float64(j)-gridSize/2)*step/milesPerDegreeLng,
			}

			intensity := cellIntensity(cell, pois, radiusMiles) * timeMultiplier
			if intensity > 0 {
				points = append(points, model.HeatmapPoint{
					Coordinates: cell,
					Intensity:   intensity,
				})
			}
		}
	}
	return points
}

// cellIntensity sums weighted inverse-square distance contributions from
// POIs within radiusMiles of the cell, normalized into [0, 1].
func cellIntensity(cell geo.Coordinate, pois []model.POIRecord, radiusMiles float64) float64 {
	var total float64
	for _, p := range pois {
		d := geo.Distance(cell, p.Coordinates)
		if d > radiusMiles {
			continue
		}

		weight := defaultCategoryWeight
		if w, ok := categoryWeights[p.Category]; ok {
			weight = w
		}
		falloff := math.Max(0, 1-d/radiusMiles)
		total += weight * falloff * falloff
	}
	return math.Min(1, total/saturationDivisor)
}
