package ports

import (
	"booking-location-service/internal/domain"
	"context"
)

// A single geocoding match. Importance is nil when the provider gave no score.
type GeocodeCandidate struct {
	Address    domain.Address
	Importance *float64
}

// Contract for resolving free-text addresses to coordinates.
type GeocodingProvider interface {
	// Name identifies the provider in logs and metrics.
	Name() string
	// Return up to limit candidates for text, restricted to the configured country,
	// best match first. No match is an empty slice, not an error.
	Geocode(ctx context.Context, text string, limit int) ([]GeocodeCandidate, error)
}
