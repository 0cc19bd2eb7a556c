// Package main renumbers trip stops back to 1..N outside the request path, for example after
// locations were deleted in bulk. Reads already repair gaps lazily; this tool does it eagerly.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/corkphoto/itinerary-backend/logger"
	"github.com/corkphoto/itinerary-backend/store/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	tripID := flag.String("trip", "", "Normalize a single trip instead of all trips")
	concurrency := flag.Int("concurrency", 4, "Number of trips normalized in parallel")
	dbURL := flag.String("database-url", os.Getenv("DATABASE_URL"), "Postgres connection URL")
	timeout := flag.Duration("timeout", 10*time.Minute, "Overall time limit")
	flag.Parse()

	logger.InitLogger()
	log := logger.GetLogger()
	defer func() { _ = logger.Close() }()

	if *dbURL == "" {
		log.Fatal("No database URL: pass -database-url or set DATABASE_URL")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, *dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Database ping failed: %v", err)
	}
	log.Infow("Connected to database", "database_url", logger.MaskConnectionString(*dbURL))

	s := postgres.NewItineraryStore(pool)

	ids := []string{*tripID}
	if *tripID == "" {
		if ids, err = s.TripIDs(ctx); err != nil {
			log.Fatalf("Failed to list trips: %v", err)
		}
	}

	report := normalizeAll(ctx, s, ids, *concurrency)
	log.Infow("Normalization finished",
		"trips", report.Trips,
		"changed_trips", report.ChangedTrips,
		"rewritten_positions", report.Rewritten,
		"failed", len(report.Failures))
	for id, err := range report.Failures {
		log.Errorw("Failed to normalize trip", "tripId", id, "error", err)
	}
	if len(report.Failures) > 0 {
		os.Exit(1)
	}
}
