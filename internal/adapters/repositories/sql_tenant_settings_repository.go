package repositories

import (
	"booking-location-service/internal/domain"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrSettingsNotFound is returned when a tenant has no travel settings row.
var ErrSettingsNotFound = errors.New("tenant travel settings not found")

// Postgres-backed implementation of the TenantSettingsRepository port.
type SQLTenantSettingsRepository struct{ DB *sql.DB }

func NewSQLTenantSettingsRepository(db *sql.DB) *SQLTenantSettingsRepository {
	return &SQLTenantSettingsRepository{DB: db}
}

func (s *SQLTenantSettingsRepository) GetTravelSurchargeSettings(
	ctx context.Context,
	tenantID string,
) (domain.TravelSurchargeSettings, error) {
	if s.DB == nil {
		return domain.TravelSurchargeSettings{}, errors.New("sql tenant settings repository: DB is nil")
	}

	query := `
	SELECT
		base_travel_surcharge,
		per_km_surcharge,
		min_travel_distance,
		max_travel_distance,
		travel_surcharge_required
	FROM tenant_travel_settings
	WHERE tenant_id = $1;
	`

	var out domain.TravelSurchargeSettings
	var minDist, maxDist sql.NullFloat64
	err := s.DB.QueryRowContext(ctx, query, tenantID).Scan(
		&out.BaseTravelSurcharge,
		&out.PerKmSurcharge,
		&minDist,
		&maxDist,
		&out.TravelSurchargeRequired,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.TravelSurchargeSettings{}, fmt.Errorf("get tenant settings tenant_id=%s: %w", tenantID, ErrSettingsNotFound)
	}
	if err != nil {
		return domain.TravelSurchargeSettings{}, fmt.Errorf("get tenant settings: query tenant_travel_settings table: %w", err)
	}

	out.MinTravelDistance = floatPtr(minDist)
	out.MaxTravelDistance = floatPtr(maxDist)

	return out, nil
}
