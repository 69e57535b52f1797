package providers

import (
	"booking-location-service/internal/domain"
	"booking-location-service/internal/ports"
	"context"
	"fmt"
)

// Premium providers accepted by configuration. Every call fails with
// ErrNotImplemented so a misconfigured deployment never returns made-up geodata.

type GoogleGeocoder struct{ apiKey string }

func NewGoogleGeocoder(apiKey string) *GoogleGeocoder { return &GoogleGeocoder{apiKey: apiKey} }

func (g *GoogleGeocoder) Name() string { return Google }

func (g *GoogleGeocoder) Geocode(ctx context.Context, text string, limit int) ([]ports.GeocodeCandidate, error) {
	recordCall(Google, "geocode", ErrNotImplemented)
	return nil, fmt.Errorf("google geocoding: %w", ErrNotImplemented)
}

type MapboxGeocoder struct{ apiKey string }

func NewMapboxGeocoder(apiKey string) *MapboxGeocoder { return &MapboxGeocoder{apiKey: apiKey} }

func (m *MapboxGeocoder) Name() string { return Mapbox }

func (m *MapboxGeocoder) Geocode(ctx context.Context, text string, limit int) ([]ports.GeocodeCandidate, error) {
	recordCall(Mapbox, "geocode", ErrNotImplemented)
	return nil, fmt.Errorf("mapbox geocoding: %w", ErrNotImplemented)
}

type GoogleRouter struct{ apiKey string }

func NewGoogleRouter(apiKey string) *GoogleRouter { return &GoogleRouter{apiKey: apiKey} }

func (g *GoogleRouter) Name() string { return Google }

func (g *GoogleRouter) Route(ctx context.Context, origin, destination domain.Coordinates) (domain.RouteInfo, error) {
	recordCall(Google, "route", ErrNotImplemented)
	return domain.RouteInfo{}, fmt.Errorf("google routing: %w", ErrNotImplemented)
}

type MapboxRouter struct{ apiKey string }

func NewMapboxRouter(apiKey string) *MapboxRouter { return &MapboxRouter{apiKey: apiKey} }

func (m *MapboxRouter) Name() string { return Mapbox }

func (m *MapboxRouter) Route(ctx context.Context, origin, destination domain.Coordinates) (domain.RouteInfo, error) {
	recordCall(Mapbox, "route", ErrNotImplemented)
	return domain.RouteInfo{}, fmt.Errorf("mapbox routing: %w", ErrNotImplemented)
}
