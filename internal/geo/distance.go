// Package geo holds the pure geometry used by the travel engine: great-circle
// distance, country bounding boxes and polygon containment.
package geo

import (
	"booking-location-service/internal/domain"
	"math"
)

// EarthRadiusKm is the mean Earth radius used by HaversineDistance.
const EarthRadiusKm = 6371.0

// HaversineDistance returns the great-circle distance between a and b in km.
func HaversineDistance(a, b domain.Coordinates) float64 {
	dLat := DegreesToRadians(b.Lat - a.Lat)
	dLng := DegreesToRadians(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	h := sinLat*sinLat +
		math.Cos(DegreesToRadians(a.Lat))*math.Cos(DegreesToRadians(b.Lat))*sinLng*sinLng

	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func DegreesToRadians(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}

func RadiansToDegrees(rad float64) float64 {
	return rad * (180.0 / math.Pi)
}

// IsValidCountryCoordinate reports whether c lies inside bounds. Edges count as inside.
func IsValidCountryCoordinate(c domain.Coordinates, bounds domain.CountryBounds) bool {
	return c.Lat >= bounds.MinLat && c.Lat <= bounds.MaxLat &&
		c.Lng >= bounds.MinLng && c.Lng <= bounds.MaxLng
}
