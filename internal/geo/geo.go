// Package geo provides great-circle distance, centroid, and travel-time math
// shared by the routing and analytics packages.
package geo

import "math"

// EarthRadiusMiles is the Earth radius used by the Haversine distance.
const EarthRadiusMiles = 3959.0

// walkingSpeedMPH is the assumed average walking speed.
const walkingSpeedMPH = 3.0

// milesPerKM converts between miles and kilometers.
const milesPerKM = 1.60934

// FallbackCenter is returned by Center for an empty coordinate set.
// Times Square, the anchor of the default deployment area.
var FallbackCenter = Coordinate{Lat: 40.7589, Lng: -73.9851}

// Coordinate is an immutable latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat" validate:"latitude"`
	Lng float64 `json:"lng" yaml:"lng" validate:"longitude"`
}

// Distance returns the great-circle distance between a and b in miles,
// computed with the Haversine formula. Symmetric; Distance(a, a) == 0.
func Distance(a, b Coordinate) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusMiles * c
}

// Center returns the arithmetic mean of latitudes and longitudes. This is a
// planar approximation, not a geodesic centroid; it is only suitable for
// localized, non-polar deployments away from the antimeridian. An empty input
// returns FallbackCenter.
func Center(coords []Coordinate) Coordinate {
	if len(coords) == 0 {
		return FallbackCenter
	}

	var sumLat, sumLng float64
	for _, c := range coords {
		sumLat += c.Lat
		sumLng += c.Lng
	}
	n := float64(len(coords))
	return Coordinate{Lat: sumLat / n, Lng: sumLng / n}
}

// WalkTime returns the walking time in minutes for a distance in miles,
// assuming a constant 3 mph pace.
func WalkTime(miles float64) float64 {
	return miles / walkingSpeedMPH * 60
}

// MilesToKM converts miles to kilometers.
func MilesToKM(miles float64) float64 {
	return miles * milesPerKM
}

// KMToMiles converts kilometers to miles.
func KMToMiles(km float64) float64 {
	return km / milesPerKM
}

func toRad(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}
