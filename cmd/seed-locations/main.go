// Package main loads a YAML list of locations into the catalog that trips draw stops from.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/corkphoto/itinerary-backend/logger"
	locationservice "github.com/corkphoto/itinerary-backend/models/location/service"
	"github.com/corkphoto/itinerary-backend/store/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	file := flag.String("file", "locations.yml", "YAML catalog to load")
	dbURL := flag.String("database-url", os.Getenv("DATABASE_URL"), "Postgres connection URL")
	timeout := flag.Duration("timeout", 2*time.Minute, "Overall time limit")
	flag.Parse()

	logger.InitLogger()
	log := logger.GetLogger()
	defer func() { _ = logger.Close() }()

	if *dbURL == "" {
		log.Fatal("No database URL: pass -database-url or set DATABASE_URL")
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("Failed to open catalog: %v", err)
	}
	locs, err := parseCatalog(f)
	_ = f.Close()
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *file, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, *dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()
	log.Infow("Connected to database", "database_url", logger.MaskConnectionString(*dbURL))

	svc := locationservice.NewCatalogService(postgres.NewLocationStore(pool))
	report, err := seed(ctx, svc, locs)
	log.Infow("Seeding finished", "file", *file, "created", report.Created, "skipped", report.Skipped)
	if err != nil {
		log.Errorw("Seeding stopped early", "error", err)
		os.Exit(1)
	}
}
