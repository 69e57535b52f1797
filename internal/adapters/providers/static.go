package providers

import (
	"booking-location-service/internal/domain"
	"booking-location-service/internal/ports"
	"context"
	"fmt"
	"sync/atomic"
)

// StaticGeocoder answers from a fixed address table. Used by tests and local runs
// without network access.
type StaticGeocoder struct {
	m     map[string][]ports.GeocodeCandidate
	Err   error
	calls atomic.Int64
}

func NewStaticGeocoder(entries map[string][]ports.GeocodeCandidate) *StaticGeocoder {
	m := make(map[string][]ports.GeocodeCandidate, len(entries))
	for k, v := range entries {
		m[k] = v
	}
	return &StaticGeocoder{m: m}
}

func (s *StaticGeocoder) Name() string { return "static" }

// Geocode returns the configured candidates for text (truncated to limit),
// an empty slice for unknown text, or Err when set.
func (s *StaticGeocoder) Geocode(ctx context.Context, text string, limit int) ([]ports.GeocodeCandidate, error) {
	s.calls.Add(1)
	if s.Err != nil {
		return nil, s.Err
	}

	c := s.m[text]
	if limit > 0 && len(c) > limit {
		c = c[:limit]
	}
	return append([]ports.GeocodeCandidate{}, c...), nil
}

// Calls reports how many lookups reached the geocoder.
func (s *StaticGeocoder) Calls() int { return int(s.calls.Load()) }

type RoutePair struct {
	From, To domain.Coordinates
	Info     domain.RouteInfo
}

// StaticRouter answers from a fixed origin/destination table.
type StaticRouter struct {
	m     map[string]domain.RouteInfo
	Err   error
	calls atomic.Int64
}

func NewStaticRouter(pairs []RoutePair) *StaticRouter {
	m := make(map[string]domain.RouteInfo, len(pairs))
	for _, p := range pairs {
		m[p.From.Key()+"|"+p.To.Key()] = p.Info
	}
	return &StaticRouter{m: m}
}

func (s *StaticRouter) Name() string { return "static" }

func (s *StaticRouter) Route(ctx context.Context, origin, destination domain.Coordinates) (domain.RouteInfo, error) {
	s.calls.Add(1)
	if s.Err != nil {
		return domain.RouteInfo{}, s.Err
	}

	r, ok := s.m[origin.Key()+"|"+destination.Key()]
	if !ok {
		return domain.RouteInfo{}, fmt.Errorf("missing pair %q -> %q", origin.Key(), destination.Key())
	}
	return r, nil
}

func (s *StaticRouter) Calls() int { return int(s.calls.Load()) }
