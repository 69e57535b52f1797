package domain

import (
	"encoding/json"
	"slices"
)

// Tenant-defined coverage region for home visits.
//
// Boundaries hold the stored polygon as raw JSON: either a bare array of
// {lat,lng} vertices or an object with a "coordinates" array.
type ServiceArea struct {
	ID                  string          `json:"id"`
	TenantID            string          `json:"tenant_id"`
	Name                string          `json:"name"`
	Boundaries          json.RawMessage `json:"boundaries"`
	BaseTravelSurcharge int64           `json:"base_travel_surcharge"`
	AvailableServices   []string        `json:"available_services"`
	IsActive            bool            `json:"is_active"`
}

// Offers reports whether serviceID may be booked inside the area.
// An empty AvailableServices list allows every service.
func (a ServiceArea) Offers(serviceID string) bool {
	if len(a.AvailableServices) == 0 {
		return true
	}
	return slices.Contains(a.AvailableServices, serviceID)
}

// Outcome of matching a point against a tenant's service areas.
type CoverageResult struct {
	IsWithinArea  bool         `json:"is_within_area"`
	Surcharge     int64        `json:"surcharge"`
	ServiceAreaID string       `json:"service_area_id,omitempty"`
	Degraded      *Degradation `json:"degraded,omitempty"`
}
