package geo

import (
	"math"

	"lexconnect/models"
)

// districtTable is the static region index. Order matters: containment
// checks walk the table in definition order and return the first match.
var districtTable = []models.DistrictRecord{
	{
		Name:   "Erode",
		Center: models.Coordinate{Lat: 11.3410, Lng: 77.7172},
		Bounds: models.DistrictBounds{North: 11.5266, South: 11.1554, East: 77.9115, West: 77.5229},
	},
	{
		Name:   "Coimbatore",
		Center: models.Coordinate{Lat: 11.0168, Lng: 76.9558},
		Bounds: models.DistrictBounds{North: 11.1693, South: 10.8643, East: 77.1083, West: 76.8033},
	},
	{
		Name:   "Namakkal",
		Center: models.Coordinate{Lat: 11.2342, Lng: 78.1673},
		Bounds: models.DistrictBounds{North: 11.4215, South: 11.0469, East: 78.3546, West: 77.9800},
	},
	{
		Name:   "Salem",
		Center: models.Coordinate{Lat: 11.6643, Lng: 78.1460},
		Bounds: models.DistrictBounds{North: 11.8516, South: 11.4770, East: 78.3333, West: 77.9587},
	},
}

// nearestCenterCutoffKm bounds the nearest-center fallback: points farther
// than this from every center belong to no known district.
const nearestCenterCutoffKm = 30

// Districts returns the district table.
func Districts() []models.DistrictRecord {
	return districtTable
}

// DistrictNames returns every district name in table order.
func DistrictNames() []string {
	names := make([]string, 0, len(districtTable))
	for _, d := range districtTable {
		names = append(names, d.Name)
	}
	return names
}

// DistrictByName looks a district up by name.
func DistrictByName(name string) (models.DistrictRecord, bool) {
	for _, d := range districtTable {
		if d.Name == name {
			return d, true
		}
	}
	return models.DistrictRecord{}, false
}

// IsWithinDistrict reports whether the point lies inside the named
// district's rectangular bounds. Unknown district names are simply false.
func IsWithinDistrict(point models.Coordinate, district string) bool {
	d, ok := DistrictByName(district)
	if !ok {
		return false
	}
	return point.Lat <= d.Bounds.North &&
		point.Lat >= d.Bounds.South &&
		point.Lng <= d.Bounds.East &&
		point.Lng >= d.Bounds.West
}

// FindDistrictFromCoordinates resolves a point to a district name. Bounds
// containment wins in table order; otherwise the nearest center within
// 30 km is used. An empty string means no known district, which callers
// treat as absence rather than an error.
func FindDistrictFromCoordinates(point models.Coordinate) string {
	for _, d := range districtTable {
		if IsWithinDistrict(point, d.Name) {
			return d.Name
		}
	}

	nearest := ""
	shortest := math.MaxFloat64
	for _, d := range districtTable {
		dist := DistanceKm(point, d.Center)
		if dist < shortest {
			shortest = dist
			nearest = d.Name
		}
	}
	if shortest < nearestCenterCutoffKm {
		return nearest
	}
	return ""
}

// GetNearbyDistricts lists the other districts whose centers lie within
// maxKm of the given district's center. Order is not meaningful.
func GetNearbyDistricts(district string, maxKm float64) []string {
	base, ok := DistrictByName(district)
	if !ok {
		return []string{}
	}
	nearby := []string{}
	for _, d := range districtTable {
		if d.Name == district {
			continue
		}
		if DistanceKm(base.Center, d.Center) <= maxKm {
			nearby = append(nearby, d.Name)
		}
	}
	return nearby
}
