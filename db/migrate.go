// Package db owns the schema: SQL migrations embedded in the binary and the runner that applies them.
package db

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/corkphoto/itinerary-backend/logger"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// RunMigrations applies all pending migrations to the database at dbURL.
// Safe to call on every startup; applied migrations are skipped.
//
// A dirty version means a previous run failed partway. The runner refuses to continue
// rather than guess which statements took effect.
func RunMigrations(dbURL string) error {
	log := logger.GetLogger()

	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	// golang-migrate's pgx v5 driver registers the pgx5:// scheme
	m, err := migrate.NewWithSourceInstance("iofs", source, convertToPgx5URL(dbURL))
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		log.Info("Empty database, applying all migrations")
	case err != nil:
		return fmt.Errorf("failed to read migration version: %w", err)
	case dirty:
		return fmt.Errorf("migration version %d is dirty, fix the schema and force a version before restarting", version)
	default:
		log.Infow("Current migration version", "version", version)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("Database is up to date, no migrations to apply")
			return nil
		}
		return fmt.Errorf("migration failed: %w", err)
	}

	if version, _, err := m.Version(); err == nil {
		log.Infow("Migrations applied successfully", "currentVersion", version)
	}
	return nil
}

// convertToPgx5URL rewrites postgres:// and postgresql:// URLs to the pgx5:// scheme.
func convertToPgx5URL(dbURL string) string {
	for _, prefix := range []string{"postgresql:", "postgres:"} {
		if strings.HasPrefix(dbURL, prefix) {
			return "pgx5:" + strings.TrimPrefix(dbURL, prefix)
		}
	}
	return dbURL
}
