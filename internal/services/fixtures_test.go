package services

import (
	"booking-location-service/internal/adapters/cache"
	"booking-location-service/internal/adapters/providers"
	"booking-location-service/internal/adapters/repositories"
	"booking-location-service/internal/domain"
	"booking-location-service/internal/ports"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	jakarta = domain.Coordinates{Lat: -6.200, Lng: 106.816}
	bandung = domain.Coordinates{Lat: -6.917, Lng: 107.619}
	paris   = domain.Coordinates{Lat: 48.857, Lng: 2.352}

	fixedNow = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
)

const tenant = "tenant-a"

type fixture struct {
	svc      *LocationService
	geocoder *providers.StaticGeocoder
	router   *providers.StaticRouter
	store    *repositories.MemoryStore
	cache    *cache.MemoryCache
}

type fixtureOption func(*Deps)

func withRouter(r ports.RoutingProvider) fixtureOption {
	return func(d *Deps) { d.Router = r }
}

func withAreas(a ports.ServiceAreaRepository) fixtureOption {
	return func(d *Deps) { d.Areas = a }
}

func newFixture(t *testing.T, routes []providers.RoutePair, opts ...fixtureOption) *fixture {
	t.Helper()

	f := &fixture{
		geocoder: providers.NewStaticGeocoder(map[string][]ports.GeocodeCandidate{
			"Bandung": {candidate(bandung, "Bandung, Jawa Barat, Indonesia", 0.8)},
			"Monas":   {candidate(domain.Coordinates{Lat: -6.1754, Lng: 106.8272}, "Monumen Nasional, Jakarta", 0.9)},
		}),
		router: providers.NewStaticRouter(routes),
		store:  repositories.NewMemoryStore(),
		cache:  cache.NewMemoryCache(),
	}

	deps := Deps{
		Geocoder: f.geocoder,
		Router:   f.router,
		Areas:    f.store,
		Settings: f.store,
		Cache:    f.cache,
		Clock:    func() time.Time { return fixedNow },
	}
	for _, opt := range opts {
		opt(&deps)
	}

	svc, err := New(DefaultConfig(), deps, nil)
	require.NoError(t, err)
	f.svc = svc

	return f
}

func staticGeocoder(entries map[string][]ports.GeocodeCandidate) *providers.StaticGeocoder {
	return providers.NewStaticGeocoder(entries)
}

func candidate(c domain.Coordinates, full string, importance float64) ports.GeocodeCandidate {
	out := ports.GeocodeCandidate{
		Address: domain.Address{FullAddress: full, Country: "Indonesia", Coordinates: c},
	}
	if importance > 0 {
		out.Importance = &importance
	}
	return out
}

// boxAround returns a square polygon of +-half degrees around c.
func boxAround(c domain.Coordinates, half float64) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(
		`[{"lat":%f,"lng":%f},{"lat":%f,"lng":%f},{"lat":%f,"lng":%f},{"lat":%f,"lng":%f}]`,
		c.Lat-half, c.Lng-half,
		c.Lat+half, c.Lng-half,
		c.Lat+half, c.Lng+half,
		c.Lat-half, c.Lng+half,
	))
}

type failingAreas struct{}

func (failingAreas) ListActiveServiceAreas(context.Context, string) ([]domain.ServiceArea, error) {
	return nil, errors.New("connection refused")
}

type panickingRouter struct{}

func (panickingRouter) Name() string { return "panicking" }

func (panickingRouter) Route(context.Context, domain.Coordinates, domain.Coordinates) (domain.RouteInfo, error) {
	var m map[string]int
	m["boom"]++
	return domain.RouteInfo{}, nil
}

func TestNew_RequiresCollaborators(t *testing.T) {
	store := repositories.NewMemoryStore()
	geocoder := providers.NewStaticGeocoder(nil)
	router := providers.NewStaticRouter(nil)

	_, err := New(DefaultConfig(), Deps{Router: router, Areas: store, Settings: store}, nil)
	require.Error(t, err)
	_, err = New(DefaultConfig(), Deps{Geocoder: geocoder, Areas: store, Settings: store}, nil)
	require.Error(t, err)
	_, err = New(DefaultConfig(), Deps{Geocoder: geocoder, Router: router, Settings: store}, nil)
	require.Error(t, err)
	_, err = New(DefaultConfig(), Deps{Geocoder: geocoder, Router: router, Areas: store}, nil)
	require.Error(t, err)

	svc, err := New(Config{}, Deps{Geocoder: geocoder, Router: router, Areas: store, Settings: store}, nil)
	require.NoError(t, err)
	require.Equal(t, defaultServiceDuration, svc.cfg.DefaultServiceDuration)
	require.Equal(t, defaultCacheTTL, svc.cfg.CacheTTL)
}
