package ports

import (
	"booking-location-service/internal/domain"
	"context"
)

// Port: a boundary for reading tenant service areas.
type ServiceAreaRepository interface {
	// Retrieve the tenant's active service areas in stored order.
	ListActiveServiceAreas(ctx context.Context, tenantID string) ([]domain.ServiceArea, error)
}

// Port: a boundary for reading tenant-level travel pricing.
type TenantSettingsRepository interface {
	GetTravelSurchargeSettings(ctx context.Context, tenantID string) (domain.TravelSurchargeSettings, error)
}
