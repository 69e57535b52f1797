package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "nominatim", cfg.Location.GeocodingProvider)
	assert.Equal(t, "osrm", cfg.Location.RoutingProvider)
	assert.Equal(t, "id", cfg.Location.DefaultCountry)
	assert.True(t, cfg.Location.CacheEnabled)
	assert.Equal(t, time.Hour, cfg.Location.CacheTTL)
	assert.Equal(t, "memory", cfg.Location.CacheBackend)
	assert.Equal(t, 10*time.Second, cfg.Location.ProviderTimeout)
	assert.Equal(t, 5*time.Second, cfg.Location.LookupTimeout)
}

func TestLoadFromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("GEOCODING_PROVIDER", "Google")
	t.Setenv("ROUTING_PROVIDER", "mapbox")
	t.Setenv("GOOGLE_MAPS_API_KEY", "g-key")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CACHE_TTL", "120")
	t.Setenv("NOMINATIM_URL", "http://localhost:9000/")
	t.Setenv("PROVIDER_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "google", cfg.Location.GeocodingProvider)
	assert.Equal(t, "mapbox", cfg.Location.RoutingProvider)
	assert.Equal(t, "g-key", cfg.Location.APIKeys["google"])
	assert.False(t, cfg.Location.CacheEnabled)
	assert.Equal(t, 2*time.Minute, cfg.Location.CacheTTL)
	assert.Equal(t, "http://localhost:9000", cfg.Location.NominatimURL)
	assert.Equal(t, 3*time.Second, cfg.Location.ProviderTimeout)
}

func TestLoadRejectsRedisBackendWithoutURL(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CACHE_BACKEND", "redis")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_URL")
}

func TestGet(t *testing.T) {
	t.Setenv("SEED_PATH", "seeds.json")
	assert.Equal(t, "seeds.json", Get("SEED_PATH", "fallback"))
	assert.Equal(t, "fallback", Get("UNSET_CONFIG_KEY_FOR_TEST", "fallback"))
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
