package repositories

import (
	"booking-location-service/internal/domain"
	"context"
	"fmt"
	"sync"
)

// MemoryStore serves service areas and tenant settings from process memory.
// It backs the server when DATABASE_URL is unset and the service tests.
type MemoryStore struct {
	mu       sync.RWMutex
	areas    map[string][]domain.ServiceArea
	settings map[string]domain.TravelSurchargeSettings
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		areas:    make(map[string][]domain.ServiceArea),
		settings: make(map[string]domain.TravelSurchargeSettings),
	}
}

func (m *MemoryStore) AddServiceArea(a domain.ServiceArea) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.areas[a.TenantID] = append(m.areas[a.TenantID], a)
}

func (m *MemoryStore) PutTravelSurchargeSettings(tenantID string, s domain.TravelSurchargeSettings) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[tenantID] = s
}

func (m *MemoryStore) ListActiveServiceAreas(_ context.Context, tenantID string) ([]domain.ServiceArea, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.ServiceArea, 0, len(m.areas[tenantID]))
	for _, a := range m.areas[tenantID] {
		if a.IsActive {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MemoryStore) GetTravelSurchargeSettings(_ context.Context, tenantID string) (domain.TravelSurchargeSettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.settings[tenantID]
	if !ok {
		return domain.TravelSurchargeSettings{}, fmt.Errorf("get tenant settings tenant_id=%s: %w", tenantID, ErrSettingsNotFound)
	}
	return s, nil
}

// Load adds every area and settings row from seed.
func (m *MemoryStore) Load(seed *Seed) {
	for _, a := range seed.ServiceAreas {
		m.AddServiceArea(a)
	}
	for _, s := range seed.TenantSettings {
		m.PutTravelSurchargeSettings(s.TenantID, s.TravelSurchargeSettings)
	}
}
