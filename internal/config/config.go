package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything the server and dbtool need at startup.
type Config struct {
	AppEnv      string
	LogLevel    string
	Port        string
	DatabaseURL string
	RedisURL    string
	SeedPath    string
	Location    LocationConfig
}

// LocationConfig is the recognised configuration surface of the travel engine.
type LocationConfig struct {
	GeocodingProvider string
	RoutingProvider   string
	APIKeys           map[string]string
	DefaultCountry    string
	DefaultLanguage   string
	CacheEnabled      bool
	CacheTTL          time.Duration
	// CacheBackend is one of redis, sql or memory.
	CacheBackend    string
	NominatimURL    string
	OSRMURL         string
	UserAgent       string
	NominatimRPS    float64
	ProviderTimeout time.Duration
	LookupTimeout   time.Duration
}

// Load reads a .env file when present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("SEED_PATH", "data/seeds/service_areas.json")

	v.SetDefault("GEOCODING_PROVIDER", "nominatim")
	v.SetDefault("ROUTING_PROVIDER", "osrm")
	v.SetDefault("GOOGLE_MAPS_API_KEY", "")
	v.SetDefault("MAPBOX_API_KEY", "")
	v.SetDefault("DEFAULT_COUNTRY", "id")
	v.SetDefault("DEFAULT_LANGUAGE", "id")
	v.SetDefault("CACHE_ENABLED", true)
	v.SetDefault("CACHE_TTL", 3600)
	v.SetDefault("CACHE_BACKEND", "memory")
	v.SetDefault("NOMINATIM_URL", "https://nominatim.openstreetmap.org")
	v.SetDefault("OSRM_URL", "https://router.project-osrm.org")
	v.SetDefault("USER_AGENT", "booking-location-service/1.0")
	v.SetDefault("NOMINATIM_RPS", 1.0)
	v.SetDefault("PROVIDER_TIMEOUT", "10s")
	v.SetDefault("LOOKUP_TIMEOUT", "5s")

	cfg := &Config{
		AppEnv:      v.GetString("APP_ENV"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Port:        v.GetString("PORT"),
		DatabaseURL: strings.TrimSpace(v.GetString("DATABASE_URL")),
		RedisURL:    strings.TrimSpace(v.GetString("REDIS_URL")),
		SeedPath:    v.GetString("SEED_PATH"),
		Location: LocationConfig{
			GeocodingProvider: strings.ToLower(v.GetString("GEOCODING_PROVIDER")),
			RoutingProvider:   strings.ToLower(v.GetString("ROUTING_PROVIDER")),
			APIKeys: map[string]string{
				"google": v.GetString("GOOGLE_MAPS_API_KEY"),
				"mapbox": v.GetString("MAPBOX_API_KEY"),
			},
			DefaultCountry:  strings.ToLower(v.GetString("DEFAULT_COUNTRY")),
			DefaultLanguage: v.GetString("DEFAULT_LANGUAGE"),
			CacheEnabled:    v.GetBool("CACHE_ENABLED"),
			CacheTTL:        time.Duration(v.GetInt("CACHE_TTL")) * time.Second,
			CacheBackend:    strings.ToLower(v.GetString("CACHE_BACKEND")),
			NominatimURL:    strings.TrimRight(v.GetString("NOMINATIM_URL"), "/"),
			OSRMURL:         strings.TrimRight(v.GetString("OSRM_URL"), "/"),
			UserAgent:       v.GetString("USER_AGENT"),
			NominatimRPS:    v.GetFloat64("NOMINATIM_RPS"),
			ProviderTimeout: v.GetDuration("PROVIDER_TIMEOUT"),
			LookupTimeout:   v.GetDuration("LOOKUP_TIMEOUT"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Location.CacheBackend {
	case "redis":
		if c.RedisURL == "" {
			return fmt.Errorf("config: CACHE_BACKEND=redis requires REDIS_URL")
		}
	case "sql":
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: CACHE_BACKEND=sql requires DATABASE_URL")
		}
	case "memory":
	default:
		return fmt.Errorf("config: unknown CACHE_BACKEND %q", c.Location.CacheBackend)
	}

	if c.Location.CacheTTL <= 0 {
		return fmt.Errorf("config: CACHE_TTL must be positive")
	}
	if c.Location.ProviderTimeout <= 0 || c.Location.LookupTimeout <= 0 {
		return fmt.Errorf("config: PROVIDER_TIMEOUT and LOOKUP_TIMEOUT must be positive")
	}

	return nil
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
