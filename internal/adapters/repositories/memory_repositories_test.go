package repositories

import (
	"booking-location-service/internal/domain"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	store.AddServiceArea(domain.ServiceArea{ID: "a1", TenantID: "t1", IsActive: true})
	store.AddServiceArea(domain.ServiceArea{ID: "a2", TenantID: "t1", IsActive: false})
	store.AddServiceArea(domain.ServiceArea{ID: "a3", TenantID: "t1", IsActive: true})
	store.AddServiceArea(domain.ServiceArea{ID: "b1", TenantID: "t2", IsActive: true})

	areas, err := store.ListActiveServiceAreas(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, areas, 2)
	assert.Equal(t, "a1", areas[0].ID, "insertion order kept")
	assert.Equal(t, "a3", areas[1].ID)

	none, err := store.ListActiveServiceAreas(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = store.GetTravelSurchargeSettings(ctx, "t1")
	assert.True(t, errors.Is(err, ErrSettingsNotFound))

	store.PutTravelSurchargeSettings("t1", domain.TravelSurchargeSettings{PerKmSurcharge: 2000})
	s, err := store.GetTravelSurchargeSettings(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, 2000.0, s.PerKmSurcharge)
}
