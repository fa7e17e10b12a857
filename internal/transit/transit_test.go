package transit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/cafe-scout/internal/geo"
	"github.com/sells-group/cafe-scout/internal/model"
)

func twoStationCatalog() *Catalog {
	return NewCatalog([]model.SubwayStation{
		{ID: "south", Name: "South St", Coordinates: geo.Coordinate{Lat: 40.750, Lng: -73.990}, Lines: []string{"1", "2"}},
		{ID: "north", Name: "North St", Coordinates: geo.Coordinate{Lat: 40.800, Lng: -73.990}, Lines: []string{"1"}},
	})
}

func TestNearest(t *testing.T) {
	c := twoStationCatalog()

	st, miles, ok := c.Nearest(geo.Coordinate{Lat: 40.751, Lng: -73.990})
	require.True(t, ok)
	assert.Equal(t, "south", st.ID)
	assert.Less(t, miles, 0.1)

	_, _, ok = NewCatalog(nil).Nearest(geo.Coordinate{})
	assert.False(t, ok)
}

func TestNearbySortedAndCapped(t *testing.T) {
	c := DefaultCatalog()
	timesSq := geo.Coordinate{Lat: 40.7553, Lng: -73.9869}

	nearby := c.Nearby(timesSq, 1.0, 5)
	require.NotEmpty(t, nearby)
	assert.LessOrEqual(t, len(nearby), 5)
	assert.Equal(t, "times-sq-42", nearby[0].Station.ID)
	for i := 1; i < len(nearby); i++ {
		assert.LessOrEqual(t, nearby[i-1].Miles, nearby[i].Miles)
	}
}

func TestNearbyEmptyOutsideRadius(t *testing.T) {
	c := DefaultCatalog()
	boston := geo.Coordinate{Lat: 42.3601, Lng: -71.0589}
	assert.Empty(t, c.Nearby(boston, AccessRadiusMiles, 0))
}

func TestEstimateDirectRide(t *testing.T) {
	e := NewEstimator(twoStationCatalog())

	est, err := e.Estimate(
		geo.Coordinate{Lat: 40.751, Lng: -73.990},
		geo.Coordinate{Lat: 40.801, Lng: -73.990},
	)
	require.NoError(t, err)

	assert.Equal(t, "south", est.Origin.ID)
	assert.Equal(t, "north", est.Destination.ID)
	assert.Equal(t, "1", est.Line)
	assert.Zero(t, est.Transfers)
	assert.Empty(t, est.TransferLine)
	assert.InDelta(t, FareUSD, est.Cost, 1e-9)

	// ~3.45 mile ride at 0.5 mi stop spacing is 7 stops: 7*2 + 3 wait.
	assert.Equal(t, 7, est.Stops)
	wantRide := float64(est.Stops)*2 + 3
	wantTotal := geo.WalkTime(est.WalkToMiles) + wantRide + geo.WalkTime(est.WalkFromMiles)
	assert.InDelta(t, wantTotal, est.TotalTimeMinutes, 1e-9)

	require.Len(t, est.Segments, 3)
	assert.Equal(t, SegmentWalk, est.Segments[0].Kind)
	assert.Equal(t, SegmentRide, est.Segments[1].Kind)
	assert.Equal(t, SegmentWalk, est.Segments[2].Kind)
}

func TestEstimateWithTransfer(t *testing.T) {
	catalog := NewCatalog([]model.SubwayStation{
		{ID: "a", Name: "A St", Coordinates: geo.Coordinate{Lat: 40.750, Lng: -73.990}, Lines: []string{"1"}},
		{ID: "b", Name: "B St", Coordinates: geo.Coordinate{Lat: 40.800, Lng: -73.990}, Lines: []string{"6"}},
	})
	e := NewEstimator(catalog)

	est, err := e.Estimate(
		geo.Coordinate{Lat: 40.751, Lng: -73.990},
		geo.Coordinate{Lat: 40.801, Lng: -73.990},
	)
	require.NoError(t, err)

	assert.Equal(t, 1, est.Transfers)
	assert.Equal(t, "1", est.Line)
	assert.Equal(t, "6", est.TransferLine)
	assert.InDelta(t, FareUSD, est.Cost, 1e-9, "flat fare regardless of transfers")

	// The transfer adds a segment and a 5 minute penalty.
	require.Len(t, est.Segments, 4)
	assert.Equal(t, SegmentTransfer, est.Segments[2].Kind)

	wantRide := float64(est.Stops)*2 + 3
	wantTotal := geo.WalkTime(est.WalkToMiles) + wantRide + 5 + geo.WalkTime(est.WalkFromMiles)
	assert.InDelta(t, wantTotal, est.TotalTimeMinutes, 1e-9)
}

func TestEstimateUnavailable(t *testing.T) {
	e := NewEstimator(twoStationCatalog())

	// Origin far outside the access radius of every station.
	_, err := e.Estimate(
		geo.Coordinate{Lat: 41.500, Lng: -73.990},
		geo.Coordinate{Lat: 40.801, Lng: -73.990},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)

	// Both endpoints resolving to the same station is also unavailable.
	_, err = e.Estimate(
		geo.Coordinate{Lat: 40.750, Lng: -73.990},
		geo.Coordinate{Lat: 40.751, Lng: -73.990},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)

	// Empty catalog.
	_, err = NewEstimator(NewCatalog(nil)).Estimate(geo.Coordinate{}, geo.Coordinate{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestEstimateLinelessStationUnavailable(t *testing.T) {
	// A loaded catalog may carry stations with no lines; a transfer through
	// one is unavailable, not a panic.
	catalog := NewCatalog([]model.SubwayStation{
		{ID: "a", Name: "A St", Coordinates: geo.Coordinate{Lat: 40.750, Lng: -73.990}},
		{ID: "b", Name: "B St", Coordinates: geo.Coordinate{Lat: 40.800, Lng: -73.990}, Lines: []string{"6"}},
	})
	e := NewEstimator(catalog)

	_, err := e.Estimate(
		geo.Coordinate{Lat: 40.751, Lng: -73.990},
		geo.Coordinate{Lat: 40.801, Lng: -73.990},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)

	// Line-less destination too.
	catalog = NewCatalog([]model.SubwayStation{
		{ID: "a", Name: "A St", Coordinates: geo.Coordinate{Lat: 40.750, Lng: -73.990}, Lines: []string{"1"}},
		{ID: "b", Name: "B St", Coordinates: geo.Coordinate{Lat: 40.800, Lng: -73.990}},
	})
	_, err = NewEstimator(catalog).Estimate(
		geo.Coordinate{Lat: 40.751, Lng: -73.990},
		geo.Coordinate{Lat: 40.801, Lng: -73.990},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stations.yaml")
	yaml := `
stations:
  - id: test-1
    name: Test Station
    coordinates:
      lat: 40.75
      lng: -73.99
    lines: ["1", "A"]
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, c.Stations(), 1)
	assert.Equal(t, "test-1", c.Stations()[0].ID)
	assert.Equal(t, []string{"1", "A"}, c.Stations()[0].Lines)
	assert.InDelta(t, 40.75, c.Stations()[0].Coordinates.Lat, 1e-9)
}

func TestLoadCatalogErrors(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("stations: []\n"), 0o644))
	_, err = LoadCatalog(empty)
	assert.Error(t, err)
}
