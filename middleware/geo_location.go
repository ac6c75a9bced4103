// File: middleware/geo_location.go
package middleware

import (
	"strconv"

	"lexconnect/models"
	"lexconnect/services/geo"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Geolocation outcome statuses surfaced to the client. These mirror the
// browser geolocation failure modes and are notices, never faults.
const (
	GeoStatusOK               = "ok"
	GeoStatusPermissionDenied = "permission-denied"
	GeoStatusUnavailable      = "unavailable"
	GeoStatusTimeout          = "timeout"
	GeoStatusError            = "error"
)

// Context keys set by GeolocationMiddleware.
const (
	ClientLocationKey = "clientLocation"
	ClientDistrictKey = "clientDistrict"
	GeoStatusKey      = "geoStatus"
)

// GeolocationMiddleware reads the client's coordinates from the
// X-Client-Lat / X-Client-Lng headers, resolves them to a district and
// annotates the request context. Missing or malformed coordinates resolve
// to a status, not an error; requests always proceed.
func GeolocationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		latHeader := c.GetHeader("X-Client-Lat")
		lngHeader := c.GetHeader("X-Client-Lng")
		if latHeader == "" || lngHeader == "" {
			// The client declined or never attempted geolocation.
			c.Set(GeoStatusKey, GeoStatusPermissionDenied)
			c.Next()
			return
		}

		lat, latErr := strconv.ParseFloat(latHeader, 64)
		lng, lngErr := strconv.ParseFloat(lngHeader, 64)
		if latErr != nil || lngErr != nil {
			zap.L().Warn("Malformed client coordinates",
				zap.String("lat", latHeader), zap.String("lng", lngHeader))
			c.Set(GeoStatusKey, GeoStatusError)
			c.Next()
			return
		}
		if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
			c.Set(GeoStatusKey, GeoStatusUnavailable)
			c.Next()
			return
		}

		location := models.Coordinate{Lat: lat, Lng: lng}
		c.Set(ClientLocationKey, location)
		c.Set(GeoStatusKey, GeoStatusOK)
		if district := geo.FindDistrictFromCoordinates(location); district != "" {
			c.Set(ClientDistrictKey, district)
		}
		c.Next()
	}
}
