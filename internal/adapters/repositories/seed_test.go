package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestReadSeed(t *testing.T) {
	seed, err := ReadSeed(filepath.Join("..", "..", "..", "data", "seeds", "service_areas.json"))
	require.NoError(t, err)
	require.Len(t, seed.ServiceAreas, 2)
	require.Len(t, seed.TenantSettings, 1)

	s := seed.TenantSettings[0]
	assert.Equal(t, "demo-spa", s.TenantID)
	assert.Equal(t, 5000.0, s.PerKmSurcharge)
	require.NotNil(t, s.MinTravelDistance)
	assert.Equal(t, 2.0, *s.MinTravelDistance)

	store := NewMemoryStore()
	store.Load(seed)
	areas, err := store.ListActiveServiceAreas(context.Background(), "demo-spa")
	require.NoError(t, err)
	assert.Len(t, areas, 2)
}

func TestReadSeed_GeneratesIDs(t *testing.T) {
	seed, err := ReadSeed(writeSeed(t, `{"service_areas":[{"tenant_id":"t","boundaries":[],"is_active":true}]}`))
	require.NoError(t, err)
	require.Len(t, seed.ServiceAreas, 1)
	assert.Len(t, seed.ServiceAreas[0].ID, 36)
	assert.NotNil(t, seed.ServiceAreas[0].AvailableServices)
}

func TestReadSeed_Invalid(t *testing.T) {
	tests := map[string]string{
		"malformed":          `{"service_areas":`,
		"area without owner": `{"service_areas":[{"boundaries":[]}]}`,
		"area without shape": `{"service_areas":[{"tenant_id":"t"}]}`,
		"settings no owner":  `{"tenant_settings":[{"per_km_surcharge":1}]}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadSeed(writeSeed(t, body))
			require.Error(t, err)
		})
	}

	_, err := ReadSeed(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
