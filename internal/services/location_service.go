package services

import (
	"booking-location-service/internal/domain"
	"booking-location-service/internal/platform/obs"
	"booking-location-service/internal/ports"
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
)

const (
	defaultCacheTTL        = time.Hour
	defaultLookupTimeout   = 5 * time.Second
	defaultServiceDuration = 60
	defaultResolveLimit    = 5
	geocodeCandidateLimit  = 5
	maxSuggestions         = 3
	defaultConfidence      = 0.5
)

// Config is the per-instance behaviour of a LocationService.
type Config struct {
	Bounds        domain.CountryBounds
	CacheEnabled  bool
	CacheTTL      time.Duration
	LookupTimeout time.Duration
	// DefaultServiceDuration is used for bookings without a duration, in minutes.
	DefaultServiceDuration int
	// FallbackSurcharge prices optimised routes when tenant settings cannot be loaded.
	FallbackSurcharge domain.TravelSurchargeSettings
	// ResolveConcurrency bounds concurrent location lookups in OptimizeRoute.
	ResolveConcurrency int
}

func DefaultConfig() Config {
	return Config{
		Bounds:                 domain.IndonesiaBounds,
		CacheEnabled:           true,
		CacheTTL:               defaultCacheTTL,
		LookupTimeout:          defaultLookupTimeout,
		DefaultServiceDuration: defaultServiceDuration,
		FallbackSurcharge:      domain.FallbackSurchargeSettings(),
		ResolveConcurrency:     defaultResolveLimit,
	}
}

// Deps are the collaborators a LocationService is built from.
// Cache and Clock are optional.
type Deps struct {
	Geocoder ports.GeocodingProvider
	Router   ports.RoutingProvider
	Areas    ports.ServiceAreaRepository
	Settings ports.TenantSettingsRepository
	Cache    ports.Cache
	Clock    func() time.Time
}

// LocationService validates addresses, prices travel to home visits and orders
// multi-stop routes. It is safe for concurrent use.
type LocationService struct {
	cfg      Config
	geocoder ports.GeocodingProvider
	router   ports.RoutingProvider
	areas    ports.ServiceAreaRepository
	settings ports.TenantSettingsRepository
	cache    ports.Cache
	clock    func() time.Time
	log      *zap.Logger
}

func New(cfg Config, deps Deps, log *zap.Logger) (*LocationService, error) {
	switch {
	case deps.Geocoder == nil:
		return nil, errors.New("location service: geocoder is required")
	case deps.Router == nil:
		return nil, errors.New("location service: router is required")
	case deps.Areas == nil:
		return nil, errors.New("location service: service area repository is required")
	case deps.Settings == nil:
		return nil, errors.New("location service: tenant settings repository is required")
	}

	if cfg.Bounds == (domain.CountryBounds{}) {
		cfg.Bounds = domain.IndonesiaBounds
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.LookupTimeout <= 0 {
		cfg.LookupTimeout = defaultLookupTimeout
	}
	if cfg.DefaultServiceDuration <= 0 {
		cfg.DefaultServiceDuration = defaultServiceDuration
	}
	if cfg.ResolveConcurrency <= 0 {
		cfg.ResolveConcurrency = defaultResolveLimit
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &LocationService{
		cfg:      cfg,
		geocoder: deps.Geocoder,
		router:   deps.Router,
		areas:    deps.Areas,
		settings: deps.Settings,
		cache:    deps.Cache,
		clock:    deps.Clock,
		log:      log,
	}, nil
}

func (s *LocationService) cacheOn() bool {
	return s.cfg.CacheEnabled && s.cache != nil
}

// cacheGet decodes the entry under key into dst. Cache failures are logged and
// treated as a miss.
func (s *LocationService) cacheGet(ctx context.Context, key string, dst any) bool {
	if !s.cacheOn() {
		return false
	}

	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		obs.CacheLookups.WithLabelValues("error").Inc()
		s.log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		obs.CacheLookups.WithLabelValues("miss").Inc()
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		obs.CacheLookups.WithLabelValues("error").Inc()
		s.log.Warn("cache entry undecodable", zap.String("key", key), zap.Error(err))
		return false
	}

	obs.CacheLookups.WithLabelValues("hit").Inc()
	return true
}

func (s *LocationService) cacheSet(ctx context.Context, key string, v any) {
	if !s.cacheOn() {
		return
	}

	raw, err := json.Marshal(v)
	if err != nil {
		s.log.Warn("cache entry unencodable", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cfg.CacheTTL); err != nil {
		s.log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// loadSettings fetches tenant travel pricing under the lookup timeout.
func (s *LocationService) loadSettings(ctx context.Context, tenantID string) (domain.TravelSurchargeSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.LookupTimeout)
	defer cancel()

	return s.settings.GetTravelSurchargeSettings(ctx, tenantID)
}

// degraded records a fail-open result for op and returns d.
func (s *LocationService) degraded(ctx context.Context, op string, d *domain.Degradation) *domain.Degradation {
	obs.Degraded.WithLabelValues(op, d.Reason).Inc()
	s.log.Warn("degraded result",
		zap.String("req_id", obs.RequestID(ctx)),
		zap.String("op", op),
		zap.String("reason", d.Reason),
		zap.Error(d.Err),
	)
	return d
}
