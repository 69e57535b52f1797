package services

import (
	"booking-location-service/internal/adapters/providers"
	"booking-location-service/internal/domain"
	"booking-location-service/internal/geo"
	"booking-location-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationHeuristics(t *testing.T) {
	assert.Equal(t, 216, bufferedProviderMinutes(180))
	assert.Equal(t, 12, bufferedProviderMinutes(10))
	assert.Equal(t, 2, bufferedProviderMinutes(1))
	assert.Equal(t, 0, bufferedProviderMinutes(0))

	assert.Equal(t, 5, straightLineMinutes(2.1))
	assert.Equal(t, 0, straightLineMinutes(0))

	assert.Equal(t, 10, flatLegMinutes(2.1))
	assert.Equal(t, 5, flatLegMinutes(0))
}

func TestTravelCacheKey(t *testing.T) {
	got := travelCacheKey(tenant, "massage", jakarta, domain.Coordinates{Lat: -6.91712, Lng: 107.61949})
	assert.Equal(t, "travel_calculation:tenant-a:massage:-6.2000,106.8160:-6.9171,107.6195", got)
}

func TestCalculateTravel_JakartaToBandungStraightLine(t *testing.T) {
	f := newFixture(t, nil)
	f.store.AddServiceArea(domain.ServiceArea{
		ID: "central", TenantID: tenant, IsActive: true,
		Boundaries:          boxAround(jakarta, fiveKmHalf),
		BaseTravelSurcharge: 15000,
	})

	got := f.svc.CalculateTravel(
		context.Background(),
		domain.LocationAt(jakarta.Lat, jakarta.Lng),
		domain.LocationFromAddress("Bandung"),
		tenant, "massage",
	)

	assert.Nil(t, got.Degraded)
	assert.Equal(t, domain.SourceHaversine, got.Source)
	assert.Greater(t, got.Distance, 100.0)
	assert.Less(t, got.Distance, 150.0)
	assert.InDelta(t, geo.HaversineDistance(jakarta, bandung), got.Distance, 1e-9)
	assert.Equal(t, int(math.Ceil(got.Distance*2)), got.Duration)
	assert.Greater(t, got.Duration, 0)
	assert.False(t, got.IsWithinServiceArea, "Bandung is outside the tenant's only area")
	assert.Equal(t, int64(15000), got.Surcharge, "cheapest area surcharge")
	assert.Empty(t, got.Route)
}

func TestCalculateTravel_ProviderRoute(t *testing.T) {
	polyline := []domain.Coordinates{jakarta, {Lat: -6.5, Lng: 107.1}, bandung}
	f := newFixture(t, []providers.RoutePair{{
		From: jakarta, To: bandung,
		Info: domain.RouteInfo{Distance: 151.2, Duration: 180, Polyline: polyline},
	}})
	f.store.PutTravelSurchargeSettings(tenant, domain.TravelSurchargeSettings{})

	got := f.svc.CalculateTravel(context.Background(),
		domain.LocationAt(jakarta.Lat, jakarta.Lng), domain.LocationAt(bandung.Lat, bandung.Lng), tenant, "")

	assert.Nil(t, got.Degraded)
	assert.Equal(t, domain.SourceProvider, got.Source)
	assert.Equal(t, 151.2, got.Distance)
	assert.Equal(t, 216, got.Duration, "provider minutes buffered by 20%")
	assert.Equal(t, polyline, got.Route)
	assert.True(t, got.IsWithinServiceArea, "no areas configured")
	assert.Zero(t, got.Surcharge, "tenant charges nothing for travel")
}

func TestCalculateTravel_CentreOfServiceArea(t *testing.T) {
	f := newFixture(t, nil)
	f.store.AddServiceArea(domain.ServiceArea{
		ID: "central", TenantID: tenant, IsActive: true,
		Boundaries:          boxAround(jakarta, fiveKmHalf),
		BaseTravelSurcharge: 15000,
	})
	f.store.PutTravelSurchargeSettings(tenant, domain.TravelSurchargeSettings{BaseTravelSurcharge: 99999})

	origin := domain.LocationAt(-6.21, 106.82)
	got := f.svc.CalculateTravel(context.Background(), origin, domain.LocationAt(jakarta.Lat, jakarta.Lng), tenant, "massage")

	assert.True(t, got.IsWithinServiceArea)
	assert.Equal(t, "central", got.ServiceAreaID)
	assert.Equal(t, int64(15000), got.Surcharge, "area surcharge wins over tenant settings")
}

func TestCalculateTravel_ZeroAreaSurchargeUsesTenantSettings(t *testing.T) {
	far := domain.Coordinates{Lat: -6.25, Lng: 106.85}
	f := newFixture(t, []providers.RoutePair{{From: far, To: jakarta, Info: domain.RouteInfo{Distance: 10, Duration: 20}}})
	f.store.AddServiceArea(domain.ServiceArea{
		ID: "free", TenantID: tenant, IsActive: true,
		Boundaries: boxAround(jakarta, fiveKmHalf),
	})
	f.store.PutTravelSurchargeSettings(tenant, domain.TravelSurchargeSettings{BaseTravelSurcharge: 10000, PerKmSurcharge: 5000})

	got := f.svc.CalculateTravel(context.Background(),
		domain.LocationAt(far.Lat, far.Lng), domain.LocationAt(jakarta.Lat, jakarta.Lng), tenant, "")

	assert.True(t, got.IsWithinServiceArea)
	assert.Equal(t, "free", got.ServiceAreaID)
	assert.Equal(t, int64(60000), got.Surcharge, "zero area surcharge falls back to 10000 + 10km x 5000")
	assert.Equal(t, 24, got.Duration)
}

func TestCalculateTravel_NeverFails(t *testing.T) {
	notImplemented := fmt.Errorf("mapbox route: %w", ports.ErrNotImplemented)

	tests := []struct {
		name        string
		origin      domain.Location
		destination domain.Location
		opts        []fixtureOption
		geocodeErr  error
		reason      string
	}{
		{
			name:        "unresolvable address",
			origin:      domain.LocationAt(jakarta.Lat, jakarta.Lng),
			destination: domain.LocationFromAddress("Atlantis"),
			reason:      domain.ReasonLocationUnresolved,
		},
		{
			name:        "empty location",
			origin:      domain.Location{},
			destination: domain.LocationAt(jakarta.Lat, jakarta.Lng),
			reason:      domain.ReasonLocationUnresolved,
		},
		{
			name:        "geocoder down",
			origin:      domain.LocationFromAddress("Bandung"),
			destination: domain.LocationAt(jakarta.Lat, jakarta.Lng),
			geocodeErr:  errors.New("dial tcp: connection refused"),
			reason:      domain.ReasonLocationUnresolved,
		},
		{
			name:        "geocoder not implemented",
			origin:      domain.LocationFromAddress("Bandung"),
			destination: domain.LocationAt(jakarta.Lat, jakarta.Lng),
			geocodeErr:  fmt.Errorf("google geocode: %w", ports.ErrNotImplemented),
			reason:      domain.ReasonProviderNotImplemented,
		},
		{
			name:        "router not implemented",
			origin:      domain.LocationAt(jakarta.Lat, jakarta.Lng),
			destination: domain.LocationAt(bandung.Lat, bandung.Lng),
			opts:        []fixtureOption{withRouter(&providers.StaticRouter{Err: notImplemented})},
			reason:      domain.ReasonProviderNotImplemented,
		},
		{
			name:        "non-finite coordinates",
			origin:      domain.LocationAt(math.NaN(), 106.8),
			destination: domain.LocationAt(jakarta.Lat, jakarta.Lng),
			reason:      domain.ReasonLocationUnresolved,
		},
		{
			name:        "infinite coordinates",
			origin:      domain.LocationAt(jakarta.Lat, jakarta.Lng),
			destination: domain.LocationAt(bandung.Lat, math.Inf(1)),
			reason:      domain.ReasonLocationUnresolved,
		},
		{
			name:        "latitude out of range",
			origin:      domain.LocationAt(91, 106.8),
			destination: domain.LocationAt(jakarta.Lat, jakarta.Lng),
			reason:      domain.ReasonLocationUnresolved,
		},
		{
			name:        "router panics",
			origin:      domain.LocationAt(jakarta.Lat, jakarta.Lng),
			destination: domain.LocationAt(bandung.Lat, bandung.Lng),
			opts:        []fixtureOption{withRouter(panickingRouter{})},
			reason:      domain.ReasonUnexpectedFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil, tt.opts...)
			f.geocoder.Err = tt.geocodeErr

			var got domain.TravelCalculation
			require.NotPanics(t, func() {
				got = f.svc.CalculateTravel(context.Background(), tt.origin, tt.destination, tenant, "massage")
			})

			assert.Zero(t, got.Distance)
			assert.Zero(t, got.Duration)
			assert.Zero(t, got.Surcharge)
			assert.False(t, got.IsWithinServiceArea)
			require.NotNil(t, got.Degraded)
			assert.Equal(t, tt.reason, got.Degraded.Reason)
			assert.Equal(t, 0, f.cache.Len(), "degraded results are not cached")
		})
	}
}

func TestCalculateTravel_RouterFailureFallsBack(t *testing.T) {
	f := newFixture(t, nil)
	f.router.Err = errors.New("Code 502: bad gateway")

	got := f.svc.CalculateTravel(context.Background(),
		domain.LocationAt(jakarta.Lat, jakarta.Lng), domain.LocationAt(bandung.Lat, bandung.Lng), tenant, "")

	assert.Nil(t, got.Degraded, "straight-line fallback is a normal result")
	assert.Equal(t, domain.SourceHaversine, got.Source)
	assert.InDelta(t, geo.HaversineDistance(jakarta, bandung), got.Distance, 1e-9)
}

func TestCalculateTravel_AreaLookupFailure(t *testing.T) {
	f := newFixture(t, nil, withAreas(failingAreas{}))
	f.store.PutTravelSurchargeSettings(tenant, domain.TravelSurchargeSettings{BaseTravelSurcharge: 5000})

	got := f.svc.CalculateTravel(context.Background(),
		domain.LocationAt(jakarta.Lat, jakarta.Lng), domain.LocationAt(bandung.Lat, bandung.Lng), tenant, "")

	assert.True(t, got.IsWithinServiceArea, "lookup failure fails open")
	assert.Equal(t, int64(5000), got.Surcharge)
	require.NotNil(t, got.Degraded)
	assert.Equal(t, domain.ReasonServiceAreaLookupFailed, got.Degraded.Reason)
	assert.Equal(t, 0, f.cache.Len())
}

func TestCalculateTravel_MissingTenantSettings(t *testing.T) {
	f := newFixture(t, nil)

	got := f.svc.CalculateTravel(context.Background(),
		domain.LocationAt(jakarta.Lat, jakarta.Lng), domain.LocationAt(bandung.Lat, bandung.Lng), tenant, "")

	assert.Greater(t, got.Distance, 0.0)
	assert.Zero(t, got.Surcharge)
	require.NotNil(t, got.Degraded)
	assert.Equal(t, domain.ReasonTenantSettingsUnavailable, got.Degraded.Reason)
}

func TestCalculateTravel_Cached(t *testing.T) {
	f := newFixture(t, []providers.RoutePair{{From: jakarta, To: bandung, Info: domain.RouteInfo{Distance: 150, Duration: 170}}})
	f.store.PutTravelSurchargeSettings(tenant, domain.TravelSurchargeSettings{PerKmSurcharge: 1000})
	ctx := context.Background()
	from := domain.LocationAt(jakarta.Lat, jakarta.Lng)

	first := f.svc.CalculateTravel(ctx, from, domain.LocationFromAddress("Bandung"), tenant, "massage")
	second := f.svc.CalculateTravel(ctx, from, domain.LocationFromAddress("Bandung"), tenant, "massage")

	assert.Equal(t, first, second)
	assert.Equal(t, int64(150000), first.Surcharge)
	assert.Equal(t, 1, f.router.Calls(), "second calculation served from cache")
	assert.Equal(t, 1, f.geocoder.Calls(), "address validation cached too")

	_, ok, err := f.cache.Get(ctx, travelCacheKey(tenant, "massage", jakarta, bandung))
	require.NoError(t, err)
	assert.True(t, ok)

	f.svc.CalculateTravel(ctx, from, domain.LocationFromAddress("Bandung"), tenant, "cleaning")
	assert.Equal(t, 2, f.router.Calls(), "service id is part of the key")
}
