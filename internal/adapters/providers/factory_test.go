package providers

import (
	"booking-location-service/internal/domain"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeocoder(t *testing.T) {
	for _, name := range []string{"", Nominatim} {
		g, err := NewGeocoder(name, Options{NominatimURL: "http://localhost"})
		require.NoError(t, err)
		assert.IsType(t, &NominatimGeocoder{}, g)
	}

	_, err := NewGeocoder("here", Options{})
	require.Error(t, err)
}

func TestNewRouter(t *testing.T) {
	r, err := NewRouter("", Options{OSRMURL: "http://localhost"})
	require.NoError(t, err)
	assert.Equal(t, OSRM, r.Name())

	_, err = NewRouter("valhalla", Options{})
	require.Error(t, err)
}

func TestPlaceholderProvidersAreNotImplemented(t *testing.T) {
	ctx := context.Background()
	opts := Options{APIKeys: map[string]string{Google: "g", Mapbox: "m"}}

	for _, name := range []string{Google, Mapbox} {
		t.Run(name, func(t *testing.T) {
			g, err := NewGeocoder(name, opts)
			require.NoError(t, err)
			assert.Equal(t, name, g.Name())

			_, err = g.Geocode(ctx, "Bandung", 5)
			assert.True(t, errors.Is(err, ErrNotImplemented), "geocode err = %v", err)

			r, err := NewRouter(name, opts)
			require.NoError(t, err)

			_, err = r.Route(ctx, domain.Coordinates{}, domain.Coordinates{Lat: 1, Lng: 1})
			assert.True(t, errors.Is(err, ErrNotImplemented), "route err = %v", err)
		})
	}
}
