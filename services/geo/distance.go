// Package geo holds the great-circle math and the static district index
// used to rank and gate providers by proximity.
package geo

import (
	"math"

	"lexconnect/models"
)

const earthRadiusKm = 6371

// DistanceKm computes the haversine great-circle distance in kilometres
// between two coordinates.
func DistanceKm(a, b models.Coordinate) float64 {
	dLat := (b.Lat - a.Lat) * (math.Pi / 180)
	dLng := (b.Lng - a.Lng) * (math.Pi / 180)
	lat1Rad := a.Lat * (math.Pi / 180)
	lat2Rad := b.Lat * (math.Pi / 180)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// DefaultMaxDistanceKm is the cutoff beyond which a provider contributes
// nothing to proximity scoring.
const DefaultMaxDistanceKm = 60

// DistanceFactor buckets a distance into a proximity factor. Non-increasing
// in km: 1.0 up to 10 km, 0.8 up to 20 km, 0.5 up to 40 km, 0.2 below
// maxKm and 0.0 from maxKm on. km <= 0 counts as co-located.
func DistanceFactor(km, maxKm float64) float64 {
	if km <= 0 {
		return 1.0
	}
	if km >= maxKm {
		return 0.0
	}
	switch {
	case km <= 10:
		return 1.0
	case km <= 20:
		return 0.8
	case km <= 40:
		return 0.5
	default:
		return 0.2
	}
}
