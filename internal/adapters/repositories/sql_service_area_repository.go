package repositories

import (
	"booking-location-service/internal/domain"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// Postgres-backed implementation of the ServiceAreaRepository port.
type SQLServiceAreaRepository struct{ DB *sql.DB }

func NewSQLServiceAreaRepository(db *sql.DB) *SQLServiceAreaRepository {
	return &SQLServiceAreaRepository{DB: db}
}

// Return the tenant's active service areas in creation order.
func (s *SQLServiceAreaRepository) ListActiveServiceAreas(
	ctx context.Context,
	tenantID string,
) ([]domain.ServiceArea, error) {
	if s.DB == nil {
		return nil, errors.New("sql service area repository: DB is nil")
	}

	query := `
	SELECT
		id,
		tenant_id,
		name,
		boundaries,
		base_travel_surcharge,
		available_services,
		is_active
	FROM service_areas
	WHERE tenant_id = $1 AND is_active
	ORDER BY created_at, id;
	`
	rows, err := s.DB.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list service areas: query service_areas table: %w", err)
	}
	defer rows.Close()

	areas := make([]domain.ServiceArea, 0, 8)
	for rows.Next() {
		var a domain.ServiceArea
		var boundaries, services []byte
		err := rows.Scan(
			&a.ID,
			&a.TenantID,
			&a.Name,
			&boundaries,
			&a.BaseTravelSurcharge,
			&services,
			&a.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("list service areas: scan row: %w", err)
		}

		a.Boundaries = json.RawMessage(boundaries)
		if len(services) > 0 {
			if err := json.Unmarshal(services, &a.AvailableServices); err != nil {
				return nil, fmt.Errorf("list service areas: decode available_services id=%s: %w", a.ID, err)
			}
		}
		areas = append(areas, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list service areas: row iteration: %w", err)
	}

	return areas, nil
}
