package repositories

import (
	"booking-location-service/internal/domain"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Initialize the Postgres database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createServiceAreasQuery := `
	CREATE TABLE IF NOT EXISTS service_areas (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		name TEXT NOT NULL,
		boundaries JSONB NOT NULL,
		base_travel_surcharge BIGINT NOT NULL DEFAULT 0,
		available_services JSONB NOT NULL DEFAULT '[]'::jsonb,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createTenantSettingsQuery := `
	CREATE TABLE IF NOT EXISTS tenant_travel_settings (
		tenant_id TEXT PRIMARY KEY,
		base_travel_surcharge DOUBLE PRECISION NOT NULL DEFAULT 0,
		per_km_surcharge DOUBLE PRECISION NOT NULL DEFAULT 0,
		min_travel_distance DOUBLE PRECISION,
		max_travel_distance DOUBLE PRECISION,
		travel_surcharge_required BOOLEAN NOT NULL DEFAULT FALSE
	);
	`

	createCacheEntriesQuery := `
	CREATE TABLE IF NOT EXISTS cache_entries (
		key TEXT PRIMARY KEY,
		value BYTEA NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_service_areas_tenant_active
	ON service_areas(tenant_id, is_active);
	`

	statements := []string{
		createServiceAreasQuery,
		createTenantSettingsQuery,
		createCacheEntriesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Seed is the on-disk shape of a tenant seed file.
type Seed struct {
	ServiceAreas   []domain.ServiceArea `json:"service_areas"`
	TenantSettings []TenantSettingsSeed `json:"tenant_settings"`
}

type TenantSettingsSeed struct {
	TenantID string `json:"tenant_id"`
	domain.TravelSurchargeSettings
}

// ReadSeed loads and checks a seed file. Areas without an id get a generated one.
func ReadSeed(jsonPath string) (*Seed, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed: read %q: %w", jsonPath, err)
	}

	var data Seed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("seed: parse json: %w", err)
	}

	for i := range data.ServiceAreas {
		a := &data.ServiceAreas[i]
		if strings.TrimSpace(a.TenantID) == "" {
			return nil, fmt.Errorf("seed: service area at index %d: tenant_id cannot be empty", i+1)
		}
		if len(a.Boundaries) == 0 {
			return nil, fmt.Errorf("seed: service area at index %d: boundaries cannot be empty", i+1)
		}
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		if a.AvailableServices == nil {
			a.AvailableServices = []string{}
		}
	}
	for i, s := range data.TenantSettings {
		if strings.TrimSpace(s.TenantID) == "" {
			return nil, fmt.Errorf("seed: tenant settings at index %d: tenant_id cannot be empty", i+1)
		}
	}

	return &data, nil
}

// Populate the database with service areas and tenant settings from a JSON file.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) error {
	if db == nil {
		return errors.New("seed: DB is nil")
	}

	data, err := ReadSeed(jsonPath)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	areaStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO service_areas (
		id,
		tenant_id,
		name,
		boundaries,
		base_travel_surcharge,
		available_services,
		is_active
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (id) DO UPDATE
	SET tenant_id = EXCLUDED.tenant_id,
		name = EXCLUDED.name,
		boundaries = EXCLUDED.boundaries,
		base_travel_surcharge = EXCLUDED.base_travel_surcharge,
		available_services = EXCLUDED.available_services,
		is_active = EXCLUDED.is_active;
	`)
	if err != nil {
		return fmt.Errorf("seed: prepare service area insert: %w", err)
	}
	defer areaStmt.Close()

	for _, a := range data.ServiceAreas {
		services, err := json.Marshal(a.AvailableServices)
		if err != nil {
			return fmt.Errorf("seed: encode services for area id=%s: %w", a.ID, err)
		}
		if _, err := areaStmt.ExecContext(
			ctx,
			a.ID, a.TenantID, a.Name, string(a.Boundaries), a.BaseTravelSurcharge, string(services), a.IsActive,
		); err != nil {
			return fmt.Errorf("seed: insert service area id=%s: %w", a.ID, err)
		}
	}

	settingsStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO tenant_travel_settings (
		tenant_id,
		base_travel_surcharge,
		per_km_surcharge,
		min_travel_distance,
		max_travel_distance,
		travel_surcharge_required
	)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (tenant_id) DO UPDATE
	SET base_travel_surcharge = EXCLUDED.base_travel_surcharge,
		per_km_surcharge = EXCLUDED.per_km_surcharge,
		min_travel_distance = EXCLUDED.min_travel_distance,
		max_travel_distance = EXCLUDED.max_travel_distance,
		travel_surcharge_required = EXCLUDED.travel_surcharge_required;
	`)
	if err != nil {
		return fmt.Errorf("seed: prepare tenant settings insert: %w", err)
	}
	defer settingsStmt.Close()

	for _, s := range data.TenantSettings {
		if _, err := settingsStmt.ExecContext(
			ctx,
			s.TenantID,
			s.BaseTravelSurcharge,
			s.PerKmSurcharge,
			nullFloat(s.MinTravelDistance),
			nullFloat(s.MaxTravelDistance),
			s.TravelSurchargeRequired,
		); err != nil {
			return fmt.Errorf("seed: insert tenant settings tenant_id=%s: %w", s.TenantID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit tx: %w", err)
	}

	return nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
