package geo_test

import (
	"testing"

	"lexconnect/models"
	"lexconnect/services/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryDistrictContainsItsCenter(t *testing.T) {
	for _, d := range geo.Districts() {
		assert.True(t, geo.IsWithinDistrict(d.Center, d.Name),
			"center of %s should lie within its own bounds", d.Name)
	}
}

func TestIsWithinDistrictUnknownName(t *testing.T) {
	assert.False(t, geo.IsWithinDistrict(models.Coordinate{Lat: 11.34, Lng: 77.72}, "Chennai"))
}

func TestFindDistrictFromCoordinatesInsideBounds(t *testing.T) {
	assert.Equal(t, "Erode", geo.FindDistrictFromCoordinates(models.Coordinate{Lat: 11.34, Lng: 77.72}))
}

func TestFindDistrictFromCoordinatesFarAway(t *testing.T) {
	assert.Equal(t, "", geo.FindDistrictFromCoordinates(models.Coordinate{Lat: 0, Lng: 0}))
}

func TestFindDistrictFromCoordinatesNearestCenterFallback(t *testing.T) {
	// Just outside Erode's rectangle but well within 30 km of its center.
	point := models.Coordinate{Lat: 11.53, Lng: 77.72}
	assert.Equal(t, "Erode", geo.FindDistrictFromCoordinates(point))
}

func TestGetNearbyDistricts(t *testing.T) {
	nearby := geo.GetNearbyDistricts("Erode", geo.DefaultMaxDistanceKm)
	assert.NotContains(t, nearby, "Erode")
	// Namakkal's center is about 50 km from Erode's.
	assert.Contains(t, nearby, "Namakkal")

	for _, name := range nearby {
		d, ok := geo.DistrictByName(name)
		require.True(t, ok)
		base, _ := geo.DistrictByName("Erode")
		assert.LessOrEqual(t, geo.DistanceKm(base.Center, d.Center), float64(geo.DefaultMaxDistanceKm))
	}
}

func TestGetNearbyDistrictsUnknownDistrict(t *testing.T) {
	assert.Empty(t, geo.GetNearbyDistricts("Chennai", geo.DefaultMaxDistanceKm))
}
