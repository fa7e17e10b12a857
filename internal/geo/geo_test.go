package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceIdentity(t *testing.T) {
	p := Coordinate{Lat: 40.7589, Lng: -73.9851}
	assert.Zero(t, Distance(p, p))
}

func TestDistanceSymmetry(t *testing.T) {
	a := Coordinate{Lat: 40.7589, Lng: -73.9851}
	b := Coordinate{Lat: 40.7527, Lng: -73.9772}
	assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-12)
}

func TestDistanceKnownValues(t *testing.T) {
	// Times Square to Grand Central is roughly half a mile.
	a := Coordinate{Lat: 40.7589, Lng: -73.9851}
	b := Coordinate{Lat: 40.7527, Lng: -73.9772}
	d := Distance(a, b)
	assert.Greater(t, d, 0.4)
	assert.Less(t, d, 0.7)

	// One degree of latitude is about 69 miles.
	c := Coordinate{Lat: 41.0, Lng: -74.0}
	e := Coordinate{Lat: 40.0, Lng: -74.0}
	assert.InDelta(t, 69.1, Distance(c, e), 0.3)
}

func TestCenter(t *testing.T) {
	coords := []Coordinate{
		{Lat: 40.0, Lng: -74.0},
		{Lat: 42.0, Lng: -72.0},
	}
	center := Center(coords)
	assert.InDelta(t, 41.0, center.Lat, 1e-12)
	assert.InDelta(t, -73.0, center.Lng, 1e-12)
}

func TestCenterEmptyFallsBack(t *testing.T) {
	assert.Equal(t, FallbackCenter, Center(nil))
	assert.Equal(t, FallbackCenter, Center([]Coordinate{}))
}

func TestWalkTime(t *testing.T) {
	// 3 mph means 1 mile takes 20 minutes.
	assert.InDelta(t, 20.0, WalkTime(1.0), 1e-9)
	assert.InDelta(t, 10.0, WalkTime(0.5), 1e-9)
	assert.Zero(t, WalkTime(0))
}

func TestUnitConversionsRoundTrip(t *testing.T) {
	assert.InDelta(t, 1.60934, MilesToKM(1), 1e-9)
	assert.InDelta(t, 5.0, KMToMiles(MilesToKM(5.0)), 1e-9)
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(Coordinate{Lat: 40.7589, Lng: -73.9851}))
	require.NoError(t, Validate(Coordinate{Lat: -90, Lng: 180}))

	for _, c := range []Coordinate{
		{Lat: 91, Lng: 0},
		{Lat: -91, Lng: 0},
		{Lat: 0, Lng: 181},
		{Lat: 0, Lng: -181},
		{Lat: math.NaN(), Lng: 0},
		{Lat: 0, Lng: math.Inf(1)},
	} {
		err := Validate(c)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidCoordinate)
	}
}
