package postgres

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/corkphoto/itinerary-backend/errors"
	"github.com/corkphoto/itinerary-backend/logger"
	"github.com/corkphoto/itinerary-backend/store"
	"github.com/corkphoto/itinerary-backend/types"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	locationSlugConstraint = "locations_slug_key"
	locationNameConstraint = "locations_name_key"
)

const (
	listLocationsQuery = `
		SELECT id, name, slug, latitude, longitude, notes, created_at
		FROM locations
		ORDER BY name ASC`

	getLocationQuery = `
		SELECT id, name, slug, latitude, longitude, notes, created_at
		FROM locations
		WHERE id = $1`

	insertLocationQuery = `
		INSERT INTO locations (name, slug, latitude, longitude, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
)

var _ store.LocationStore = (*LocationStore)(nil)

type LocationStore struct {
	db DBTX
}

func NewLocationStore(db DBTX) *LocationStore {
	return &LocationStore{db: db}
}

// ListLocations returns the whole catalog ordered by name.
func (s *LocationStore) ListLocations(ctx context.Context) ([]types.Location, error) {
	rows, err := s.db.Query(ctx, listLocationsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	locations := make([]types.Location, 0)
	for rows.Next() {
		var l types.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Slug, &l.Latitude, &l.Longitude, &l.Notes, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locations: %w", err)
	}
	return locations, nil
}

func (s *LocationStore) GetLocation(ctx context.Context, id string) (*types.Location, error) {
	var l types.Location
	err := s.db.QueryRow(ctx, getLocationQuery, id).
		Scan(&l.ID, &l.Name, &l.Slug, &l.Latitude, &l.Longitude, &l.Notes, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("location", id)
		}
		return nil, fmt.Errorf("failed to get location: %w", err)
	}
	return &l, nil
}

// CreateLocation inserts loc. A slug clash returns store.ErrSlugTaken so the caller can pick
// another slug; a name clash is a conflict.
func (s *LocationStore) CreateLocation(ctx context.Context, loc types.Location) (*types.Location, error) {
	created := loc
	err := s.db.QueryRow(ctx, insertLocationQuery, loc.Name, loc.Slug, loc.Latitude, loc.Longitude, loc.Notes).
		Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			switch pgErr.ConstraintName {
			case locationSlugConstraint:
				return nil, store.ErrSlugTaken
			case locationNameConstraint:
				return nil, apperrors.NewConflictError("A location with that name already exists", loc.Name)
			}
		}
		return nil, fmt.Errorf("failed to insert location: %w", err)
	}

	logger.GetLogger().Infow("Created location", "locationId", created.ID, "slug", created.Slug)
	return &created, nil
}
