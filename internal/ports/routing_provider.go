package ports

import (
	"booking-location-service/internal/domain"
	"context"
)

// Contract for retrieving road distance, duration and geometry between two points.
type RoutingProvider interface {
	Name() string
	// Return the driving route from origin to destination.
	Route(ctx context.Context, origin, destination domain.Coordinates) (domain.RouteInfo, error)
}
