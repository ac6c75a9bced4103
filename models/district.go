package models

// DistrictBounds is an axis-aligned lat/lng rectangle. Not geodesically
// exact; acceptable at district scale.
type DistrictBounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// DistrictRecord is a named service region with a center point and
// rectangular bounds. Static, loaded once at process start.
type DistrictRecord struct {
	Name   string         `json:"name"`
	Center Coordinate     `json:"center"`
	Bounds DistrictBounds `json:"bounds"`
}
