package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/cafe-scout/internal/geo"
	"github.com/sells-group/cafe-scout/internal/model"
	"github.com/sells-group/cafe-scout/internal/transit"
)

func testCatalog() *transit.Catalog {
	return transit.NewCatalog([]model.SubwayStation{
		{ID: "south", Name: "South St", Coordinates: geo.Coordinate{Lat: 40.750, Lng: -73.990}, Lines: []string{"1"}},
		{ID: "north", Name: "North St", Coordinates: geo.Coordinate{Lat: 40.800, Lng: -73.990}, Lines: []string{"1"}},
	})
}

func TestStatsEmptyRouteIsNil(t *testing.T) {
	calc := NewCalculator(nil)
	assert.Nil(t, calc.Stats(geo.Coordinate{}, nil, ModeWalking))
	assert.Nil(t, calc.Stats(geo.Coordinate{}, []model.Store{}, ModeMixed))
}

func TestStatsWalkingMode(t *testing.T) {
	calc := NewCalculator(nil)
	origin := geo.Coordinate{Lat: 40.750, Lng: -73.990}
	stores := []model.Store{
		storeAt("a", 40.760, -73.990),
		storeAt("b", 40.770, -73.990),
	}

	stats := calc.Stats(origin, stores, ModeWalking)
	require.NotNil(t, stats)

	assert.Equal(t, 2, stats.StopCount)
	assert.Zero(t, stats.TotalCost)

	wantMiles := geo.Distance(origin, stores[0].Coordinates) +
		geo.Distance(stores[0].Coordinates, stores[1].Coordinates)
	assert.InDelta(t, wantMiles, stats.TotalDistanceMiles, 1e-9)
	assert.InDelta(t, geo.WalkTime(wantMiles), stats.TotalTimeMinutes, 1e-9)
}

func TestStatsTransitLegPaysFare(t *testing.T) {
	calc := NewCalculator(transit.NewEstimator(testCatalog()))
	// Origin near the south station, one store near the north station. The
	// leg is well over the walk threshold, so mixed mode rides.
	origin := geo.Coordinate{Lat: 40.751, Lng: -73.990}
	stores := []model.Store{storeAt("uptown", 40.801, -73.990)}

	stats := calc.Stats(origin, stores, ModeMixed)
	require.NotNil(t, stats)
	assert.InDelta(t, transit.FareUSD, stats.TotalCost, 1e-9)

	// Transit should beat a 3.5 mile walk.
	assert.Less(t, stats.TotalTimeMinutes, geo.WalkTime(stats.TotalDistanceMiles))
}

func TestStatsShortLegWalksEvenInTransitMode(t *testing.T) {
	calc := NewCalculator(transit.NewEstimator(testCatalog()))
	origin := geo.Coordinate{Lat: 40.750, Lng: -73.990}
	stores := []model.Store{storeAt("nearby", 40.753, -73.990)}

	stats := calc.Stats(origin, stores, ModeTransit)
	require.NotNil(t, stats)
	assert.Zero(t, stats.TotalCost)
	assert.InDelta(t, geo.WalkTime(stats.TotalDistanceMiles), stats.TotalTimeMinutes, 1e-9)
}

func TestStatsNilEstimatorWalksEverything(t *testing.T) {
	calc := NewCalculator(nil)
	origin := geo.Coordinate{Lat: 40.750, Lng: -73.990}
	stores := []model.Store{storeAt("uptown", 40.801, -73.990)}

	stats := calc.Stats(origin, stores, ModeTransit)
	require.NotNil(t, stats)
	assert.Zero(t, stats.TotalCost)
	assert.InDelta(t, geo.WalkTime(stats.TotalDistanceMiles), stats.TotalTimeMinutes, 1e-9)
}

func TestStatsUnreachableTransitFallsBackToWalking(t *testing.T) {
	calc := NewCalculator(transit.NewEstimator(testCatalog()))
	// Both endpoints far from any station.
	origin := geo.Coordinate{Lat: 41.500, Lng: -73.990}
	stores := []model.Store{storeAt("remote", 41.600, -73.990)}

	stats := calc.Stats(origin, stores, ModeMixed)
	require.NotNil(t, stats)
	assert.Zero(t, stats.TotalCost)
	assert.InDelta(t, geo.WalkTime(stats.TotalDistanceMiles), stats.TotalTimeMinutes, 1e-9)
}
