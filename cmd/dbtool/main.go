package main

import (
	"booking-location-service/internal/adapters/cache"
	"booking-location-service/internal/adapters/repositories"
	"booking-location-service/internal/config"
	"booking-location-service/internal/platform/db"
	"booking-location-service/internal/platform/logger"
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	purge := flag.Bool("purge-cache", false, "delete expired cache_entries rows after seeding")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	logg, err := logger.New(config.Get("APP_ENV", "development"), config.Get("LOG_LEVEL", "info"))
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logg.Sync() }()

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		logg.Fatal("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	conn, err := db.Open(ctx, databaseURL)
	if err != nil {
		logg.Fatal("open database", zap.Error(err))
	}
	defer conn.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/service_areas.json")
	if err := initAndSeed(ctx, conn, seedPath, logg); err != nil {
		logg.Fatal("init and seed", zap.Error(err))
	}

	if *purge {
		n, err := cache.NewSQLCache(conn, logg).Purge(ctx)
		if err != nil {
			logg.Fatal("purge cache", zap.Error(err))
		}
		logg.Info("purged expired cache entries", zap.Int64("rows", n))
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, seedPath string, logg *zap.Logger) error {
	logg.Info("initializing database schema")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return err
	}
	logg.Info("schema ready")

	logg.Info("seeding database", zap.String("path", seedPath))
	if err := repositories.SeedFromJSON(ctx, conn, seedPath); err != nil {
		return err
	}
	logg.Info("seeding complete")

	return nil
}
