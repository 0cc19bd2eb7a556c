package postgres

import (
	"context"
	"errors"
	"fmt"
	"slices"

	apperrors "github.com/corkphoto/itinerary-backend/errors"
	"github.com/corkphoto/itinerary-backend/logger"
	"github.com/corkphoto/itinerary-backend/models/itinerary"
	"github.com/corkphoto/itinerary-backend/store"
	"github.com/corkphoto/itinerary-backend/types"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const stopLocationConstraint = "uq_trip_stop_location"

const (
	// The trip row lock serializes every mutation of one trip's stops.
	lockTripQuery = `SELECT id, owner_id, name, created_at FROM trips WHERE id = $1 FOR UPDATE`

	listTripsQuery = `
		SELECT t.id, t.owner_id, t.name, t.created_at, COUNT(s.id)
		FROM trips t
		LEFT JOIN trip_stops s ON s.trip_id = t.id
		WHERE t.owner_id = $1
		GROUP BY t.id
		ORDER BY t.created_at DESC, t.id DESC`

	insertTripQuery = `INSERT INTO trips (owner_id, name) VALUES ($1, $2) RETURNING id, owner_id, name, created_at`

	deleteTripQuery = `DELETE FROM trips WHERE id = $1`

	selectStopsQuery = `
		SELECT s.id, s.trip_id, s.location_id, s.position, s.created_at,
		       l.name, l.slug, l.latitude, l.longitude
		FROM trip_stops s
		JOIN locations l ON l.id = s.location_id
		WHERE s.trip_id = $1
		ORDER BY s.position ASC, s.id ASC`

	stopTripQuery = `SELECT trip_id FROM trip_stops WHERE id = $1`

	insertStopQuery = `INSERT INTO trip_stops (trip_id, location_id, position) VALUES ($1, $2, $3) RETURNING id, created_at`

	deleteStopQuery = `DELETE FROM trip_stops WHERE id = $1 AND trip_id = $2`

	updatePositionQuery = `UPDATE trip_stops SET position = $1 WHERE id = $2 AND trip_id = $3`

	// Both rows change in one statement; the deferred (trip_id, position) constraint is checked at commit.
	swapPositionsQuery = `
		UPDATE trip_stops
		SET position = CASE WHEN id = $1 THEN $2::int WHEN id = $3 THEN $4::int END
		WHERE trip_id = $5 AND id IN ($1, $3)`

	countStopsQuery = `SELECT COUNT(*) FROM trip_stops WHERE trip_id = $1`

	tripIDsQuery = `SELECT id FROM trips ORDER BY created_at`
)

var _ store.ItineraryStore = (*ItineraryStore)(nil)

// ItineraryStore is the pgx implementation of store.ItineraryStore.
type ItineraryStore struct {
	db          DBTX
	onNormalize func(rewritten int)
}

type Option func(*ItineraryStore)

// WithNormalizeObserver registers fn to be called with the number of rows each normalization rewrote.
func WithNormalizeObserver(fn func(rewritten int)) Option {
	return func(s *ItineraryStore) {
		s.onNormalize = fn
	}
}

func NewItineraryStore(db DBTX, opts ...Option) *ItineraryStore {
	s := &ItineraryStore{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ListTrips returns the owner's trips, newest first, with their stop counts.
func (s *ItineraryStore) ListTrips(ctx context.Context, ownerID string) ([]types.Trip, error) {
	rows, err := s.db.Query(ctx, listTripsQuery, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	trips := make([]types.Trip, 0)
	for rows.Next() {
		var t types.Trip
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Name, &t.CreatedAt, &t.StopCount); err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trips: %w", err)
	}
	return trips, nil
}

// TripIDs lists every trip regardless of owner, oldest first. Only maintenance tooling uses it.
func (s *ItineraryStore) TripIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, tripIDsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list trip ids: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan trip ids: %w", err)
	}
	return ids, nil
}

func (s *ItineraryStore) CreateTrip(ctx context.Context, ownerID, name string) (*types.Trip, error) {
	trip, err := insertTrip(ctx, s.db, ownerID, name)
	if err != nil {
		return nil, err
	}
	logger.GetLogger().Infow("Created trip", "tripId", trip.ID, "userId", ownerID)
	return trip, nil
}

// DeleteTrip removes the trip; its stops go with it through the foreign key cascade.
func (s *ItineraryStore) DeleteTrip(ctx context.Context, tripID, ownerID string) error {
	return WithTx(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := lockTrip(ctx, tx, tripID, ownerID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, deleteTripQuery, tripID); err != nil {
			return fmt.Errorf("failed to delete trip: %w", err)
		}
		logger.ForTrip(tripID, ownerID).Info("Deleted trip")
		return nil
	})
}

// GetItinerary normalizes the trip before returning its stops.
func (s *ItineraryStore) GetItinerary(ctx context.Context, tripID, ownerID string) (*types.Itinerary, error) {
	var it *types.Itinerary
	err := WithTx(ctx, s.db, func(tx pgx.Tx) error {
		trip, err := lockTrip(ctx, tx, tripID, ownerID)
		if err != nil {
			return err
		}
		stops, _, err := s.loadNormalized(ctx, tx, tripID)
		if err != nil {
			return err
		}
		it = newItinerary(trip, stops)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return it, nil
}

// AddStop appends the location at max(position)+1. A location already in the trip is
// rejected by the uq_trip_stop_location constraint and reported as a duplicate.
func (s *ItineraryStore) AddStop(ctx context.Context, tripID, ownerID, locationID string) (*types.Itinerary, error) {
	var it *types.Itinerary
	err := WithTx(ctx, s.db, func(tx pgx.Tx) error {
		trip, err := lockTrip(ctx, tx, tripID, ownerID)
		if err != nil {
			return err
		}
		stops, _, err := s.loadNormalized(ctx, tx, tripID)
		if err != nil {
			return err
		}

		position := itinerary.NextPosition(stops)
		var stop types.Stop
		if err := tx.QueryRow(ctx, insertStopQuery, tripID, locationID, position).Scan(&stop.ID, &stop.CreatedAt); err != nil {
			return translateStopInsertError(err, tripID, locationID)
		}

		stops, err = loadStops(ctx, tx, tripID)
		if err != nil {
			return err
		}
		it = newItinerary(trip, stops)

		logger.ForTrip(tripID, ownerID).Infow("Added stop", "stopId", stop.ID, "locationId", locationID, "position", position)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return it, nil
}

// RemoveStop deletes the stop and closes the gap it leaves.
func (s *ItineraryStore) RemoveStop(ctx context.Context, tripID, ownerID, stopID string) (*types.Itinerary, error) {
	var it *types.Itinerary
	err := WithTx(ctx, s.db, func(tx pgx.Tx) error {
		trip, err := lockTrip(ctx, tx, tripID, ownerID)
		if err != nil {
			return err
		}
		if err := checkStopInTrip(ctx, tx, tripID, stopID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, deleteStopQuery, stopID, tripID); err != nil {
			return fmt.Errorf("failed to delete stop: %w", err)
		}

		stops, _, err := s.loadNormalized(ctx, tx, tripID)
		if err != nil {
			return err
		}
		it = newItinerary(trip, stops)

		logger.ForTrip(tripID, ownerID).Infow("Removed stop", "stopId", stopID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return it, nil
}

// MoveStop exchanges the stop's position with the neighbour above or below it.
// At the boundary nothing is written and the current itinerary is returned.
func (s *ItineraryStore) MoveStop(ctx context.Context, tripID, ownerID, stopID string, dir types.Direction) (*types.Itinerary, bool, error) {
	if dir.Offset() == 0 {
		return nil, false, apperrors.InvalidArgument("direction", fmt.Sprintf("must be %q or %q", types.DirectionUp, types.DirectionDown))
	}

	var (
		it    *types.Itinerary
		moved bool
	)
	err := WithTx(ctx, s.db, func(tx pgx.Tx) error {
		trip, err := lockTrip(ctx, tx, tripID, ownerID)
		if err != nil {
			return err
		}
		if err := checkStopInTrip(ctx, tx, tripID, stopID); err != nil {
			return err
		}
		stops, _, err := s.loadNormalized(ctx, tx, tripID)
		if err != nil {
			return err
		}

		idx := slices.IndexFunc(stops, func(st types.Stop) bool { return st.ID == stopID })
		if idx < 0 {
			return fmt.Errorf("%w: stop %s not loaded for trip %s", store.ErrIntegrity, stopID, tripID)
		}
		current := stops[idx]

		neighbor, ok, err := itinerary.NeighborPosition(current.Position, len(stops), dir)
		if err != nil {
			return apperrors.InvalidArgument("direction", err.Error())
		}
		if !ok {
			it = newItinerary(trip, stops)
			return nil
		}
		other := stops[neighbor-1]

		tag, err := tx.Exec(ctx, swapPositionsQuery, current.ID, other.Position, other.ID, current.Position, tripID)
		if err != nil {
			return fmt.Errorf("failed to swap stops: %w", err)
		}
		if tag.RowsAffected() != 2 {
			return fmt.Errorf("%w: swap of stops %s and %s touched %d rows", store.ErrIntegrity, current.ID, other.ID, tag.RowsAffected())
		}

		swapped, _, err := itinerary.Move(stops, stopID, dir)
		if err != nil {
			return err
		}
		it = newItinerary(trip, swapped)
		moved = true

		logger.ForTrip(tripID, ownerID).Infow("Moved stop", "stopId", stopID, "direction", dir, "from", current.Position, "to", other.Position)
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return it, moved, nil
}

// CreateTripWithStops inserts the trip and one stop per location in the given order, all in one transaction.
func (s *ItineraryStore) CreateTripWithStops(ctx context.Context, ownerID, name string, locations []types.Location) (*types.Itinerary, error) {
	var it *types.Itinerary
	err := WithTx(ctx, s.db, func(tx pgx.Tx) error {
		trip, err := insertTrip(ctx, tx, ownerID, name)
		if err != nil {
			return err
		}

		stops := itinerary.StopsFor(trip.ID, locations)
		for i := range stops {
			err := tx.QueryRow(ctx, insertStopQuery, trip.ID, stops[i].LocationID, stops[i].Position).
				Scan(&stops[i].ID, &stops[i].CreatedAt)
			if err != nil {
				return translateStopInsertError(err, trip.ID, stops[i].LocationID)
			}
		}
		it = newItinerary(trip, stops)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.ForTrip(it.Trip.ID, ownerID).Infow("Created trip with stops", "stops", len(it.Stops))
	return it, nil
}

// Normalize renumbers the trip's stops without an ownership check. Stops whose trip row is
// missing are reported as store.ErrIntegrity and left untouched.
func (s *ItineraryStore) Normalize(ctx context.Context, tripID string) (int, error) {
	var rewritten int
	err := WithTx(ctx, s.db, func(tx pgx.Tx) error {
		var t types.Trip
		err := tx.QueryRow(ctx, lockTripQuery, tripID).Scan(&t.ID, &t.OwnerID, &t.Name, &t.CreatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			var orphans int
			if err := tx.QueryRow(ctx, countStopsQuery, tripID).Scan(&orphans); err != nil {
				return fmt.Errorf("failed to count stops: %w", err)
			}
			if orphans > 0 {
				return fmt.Errorf("%w: %d stops reference missing trip %s", store.ErrIntegrity, orphans, tripID)
			}
			return apperrors.NotFound("trip", tripID)
		}
		if err != nil {
			return fmt.Errorf("failed to lock trip: %w", err)
		}

		_, rewritten, err = s.loadNormalized(ctx, tx, tripID)
		return err
	})
	if err != nil {
		return 0, err
	}
	return rewritten, nil
}

// loadNormalized reads the trip's stops and rewrites any position that is not 1..N.
func (s *ItineraryStore) loadNormalized(ctx context.Context, tx pgx.Tx, tripID string) ([]types.Stop, int, error) {
	stops, err := loadStops(ctx, tx, tripID)
	if err != nil {
		return nil, 0, err
	}

	plan := itinerary.NormalizationPlan(stops)
	for _, change := range plan {
		tag, err := tx.Exec(ctx, updatePositionQuery, change.To, change.StopID, tripID)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to renumber stop %s: %w", change.StopID, err)
		}
		if tag.RowsAffected() != 1 {
			return nil, 0, fmt.Errorf("%w: stop %s disappeared while renumbering trip %s", store.ErrIntegrity, change.StopID, tripID)
		}
	}

	if len(plan) > 0 {
		logger.GetLogger().Infow("Renumbered stop positions", "tripId", tripID, "rewritten", len(plan))
	}
	if s.onNormalize != nil {
		s.onNormalize(len(plan))
	}
	return itinerary.Normalize(stops), len(plan), nil
}

func lockTrip(ctx context.Context, tx pgx.Tx, tripID, ownerID string) (*types.Trip, error) {
	var t types.Trip
	err := tx.QueryRow(ctx, lockTripQuery, tripID).Scan(&t.ID, &t.OwnerID, &t.Name, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("trip", tripID)
		}
		return nil, fmt.Errorf("failed to lock trip: %w", err)
	}
	if t.OwnerID != ownerID {
		logger.GetLogger().Warnw("Trip access denied", "tripId", tripID, "userId", ownerID)
		return nil, apperrors.TripAccessDenied(ownerID, tripID)
	}
	return &t, nil
}

func checkStopInTrip(ctx context.Context, tx pgx.Tx, tripID, stopID string) error {
	var owningTrip string
	err := tx.QueryRow(ctx, stopTripQuery, stopID).Scan(&owningTrip)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFound("stop", stopID)
		}
		return fmt.Errorf("failed to look up stop: %w", err)
	}
	if owningTrip != tripID {
		return apperrors.StopMismatch(stopID, tripID)
	}
	return nil
}

func loadStops(ctx context.Context, tx pgx.Tx, tripID string) ([]types.Stop, error) {
	rows, err := tx.Query(ctx, selectStopsQuery, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stops: %w", err)
	}
	defer rows.Close()

	stops := make([]types.Stop, 0)
	for rows.Next() {
		var st types.Stop
		loc := &types.Location{}
		if err := rows.Scan(
			&st.ID, &st.TripID, &st.LocationID, &st.Position, &st.CreatedAt,
			&loc.Name, &loc.Slug, &loc.Latitude, &loc.Longitude,
		); err != nil {
			return nil, fmt.Errorf("failed to scan stop: %w", err)
		}
		loc.ID = st.LocationID
		st.Location = loc
		stops = append(stops, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stops: %w", err)
	}
	return stops, nil
}

func insertTrip(ctx context.Context, q rowQuerier, ownerID, name string) (*types.Trip, error) {
	var t types.Trip
	if err := q.QueryRow(ctx, insertTripQuery, ownerID, name).Scan(&t.ID, &t.OwnerID, &t.Name, &t.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert trip: %w", err)
	}
	return &t, nil
}

func newItinerary(trip *types.Trip, stops []types.Stop) *types.Itinerary {
	t := *trip
	t.StopCount = len(stops)
	return &types.Itinerary{Trip: t, Stops: stops}
}

// translateStopInsertError maps constraint violations on trip_stops to caller-facing errors.
func translateStopInsertError(err error, tripID, locationID string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			if pgErr.ConstraintName == stopLocationConstraint {
				return apperrors.DuplicateStop(tripID, locationID)
			}
		case pgerrcode.ForeignKeyViolation:
			return apperrors.NotFound("location", locationID)
		case pgerrcode.InvalidTextRepresentation:
			return apperrors.InvalidArgument("locationId", "location id must be a UUID")
		}
	}
	return fmt.Errorf("failed to insert stop: %w", err)
}
