package main

import (
	"booking-location-service/internal/adapters/cache"
	"booking-location-service/internal/adapters/providers"
	"booking-location-service/internal/adapters/repositories"
	"booking-location-service/internal/api"
	"booking-location-service/internal/api/handlers"
	"booking-location-service/internal/config"
	"booking-location-service/internal/platform/db"
	"booking-location-service/internal/platform/logger"
	"booking-location-service/internal/ports"
	"booking-location-service/internal/services"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, Nominatim, OSRM) behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logg, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logg.Sync() }()
	zap.ReplaceGlobals(logg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logg *zap.Logger) error {
	health := map[string]handlers.Pinger{}

	var database *sql.DB
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		defer conn.Close()

		// Initialize schema on startup for local runs.
		if err := repositories.InitSchema(ctx, conn); err != nil {
			return fmt.Errorf("run: %w", err)
		}
		database = conn
		health["database"] = conn
	}

	areas, settings, err := buildRepositories(database, cfg.SeedPath, logg)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	resultCache, err := buildCache(ctx, cfg, database, health, logg)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	opts := providers.Options{
		APIKeys:         cfg.Location.APIKeys,
		Country:         cfg.Location.DefaultCountry,
		Language:        cfg.Location.DefaultLanguage,
		NominatimURL:    cfg.Location.NominatimURL,
		OSRMURL:         cfg.Location.OSRMURL,
		UserAgent:       cfg.Location.UserAgent,
		NominatimRPS:    cfg.Location.NominatimRPS,
		ProviderTimeout: cfg.Location.ProviderTimeout,
	}
	geocoder, err := providers.NewGeocoder(cfg.Location.GeocodingProvider, opts)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	router, err := providers.NewRouter(cfg.Location.RoutingProvider, opts)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	svcCfg := services.DefaultConfig()
	svcCfg.CacheEnabled = cfg.Location.CacheEnabled
	svcCfg.CacheTTL = cfg.Location.CacheTTL
	svcCfg.LookupTimeout = cfg.Location.LookupTimeout

	svc, err := services.New(svcCfg, services.Deps{
		Geocoder: geocoder,
		Router:   router,
		Areas:    areas,
		Settings: settings,
		Cache:    resultCache,
	}, logg)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	// Timeouts are tuned for cold-cache route optimisation (one geocode per booking).
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(svc, health, logg),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("geocoder", geocoder.Name()),
			zap.String("router", router.Name()),
			zap.String("cache", cfg.Location.CacheBackend),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logg.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// buildRepositories uses Postgres when a database is configured, otherwise an
// in-memory store loaded from the seed file when one exists.
func buildRepositories(
	database *sql.DB,
	seedPath string,
	logg *zap.Logger,
) (ports.ServiceAreaRepository, ports.TenantSettingsRepository, error) {
	if database != nil {
		return repositories.NewSQLServiceAreaRepository(database), repositories.NewSQLTenantSettingsRepository(database), nil
	}

	store := repositories.NewMemoryStore()
	if _, err := os.Stat(seedPath); err == nil {
		seed, err := repositories.ReadSeed(seedPath)
		if err != nil {
			return nil, nil, fmt.Errorf("build repositories: %w", err)
		}
		store.Load(seed)
		logg.Info("loaded in-memory seed", zap.String("path", seedPath), zap.Int("service_areas", len(seed.ServiceAreas)))
	} else {
		logg.Warn("no DATABASE_URL and no seed file: every tenant starts without service areas", zap.String("path", seedPath))
	}

	return store, store, nil
}

func buildCache(
	ctx context.Context,
	cfg *config.Config,
	database *sql.DB,
	health map[string]handlers.Pinger,
	logg *zap.Logger,
) (ports.Cache, error) {
	switch cfg.Location.CacheBackend {
	case "redis":
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("build cache: %w", err)
		}
		c := cache.NewRedisCache(client, "", logg)
		health["redis"] = c
		return c, nil
	case "sql":
		if database == nil {
			return nil, errors.New("build cache: sql backend requires a database")
		}
		return cache.NewSQLCache(database, logg), nil
	default:
		return cache.NewMemoryCache(), nil
	}
}
