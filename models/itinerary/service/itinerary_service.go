// Package service implements the itinerary service: argument checks, defaults and error
// translation in front of the transactional ordering engine in the postgres store.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/corkphoto/itinerary-backend/config"
	apperrors "github.com/corkphoto/itinerary-backend/errors"
	"github.com/corkphoto/itinerary-backend/logger"
	"github.com/corkphoto/itinerary-backend/models/itinerary"
	"github.com/corkphoto/itinerary-backend/store"
	"github.com/corkphoto/itinerary-backend/types"
)

const (
	MaxTripNameLength = 120

	opListTrips  = "list_trips"
	opCreateTrip = "create_trip"
	opViewTrip   = "view_trip"
	opDeleteTrip = "delete_trip"
	opAddStop    = "add_stop"
	opRemoveStop = "remove_stop"
	opMoveStop   = "move_stop"
	opRandomTrip = "random_trip"
)

// ItineraryService is what the HTTP handlers call. Ownership is checked by the store inside
// the same transaction as each read or mutation; the service never pre-checks it.
type ItineraryService struct {
	trips     store.ItineraryStore
	locations store.LocationStore
	sampler   *itinerary.Sampler
	cfg       config.ItineraryConfig
	metrics   *itineraryMetrics
}

func NewItineraryService(
	trips store.ItineraryStore,
	locations store.LocationStore,
	sampler *itinerary.Sampler,
	cfg config.ItineraryConfig,
) *ItineraryService {
	if sampler == nil {
		sampler = itinerary.NewSampler(nil)
	}
	return &ItineraryService{
		trips:     trips,
		locations: locations,
		sampler:   sampler,
		cfg:       cfg,
		metrics:   newItineraryMetrics(),
	}
}

func (s *ItineraryService) ListTrips(ctx context.Context, ownerID string) ([]types.Trip, error) {
	trips, err := s.trips.ListTrips(ctx, ownerID)
	return trips, s.finish(opListTrips, err)
}

// CreateTrip creates an empty trip. A blank name becomes the configured default.
func (s *ItineraryService) CreateTrip(ctx context.Context, ownerID, name string) (*types.Trip, error) {
	name, err := s.tripName(name)
	if err != nil {
		return nil, s.finish(opCreateTrip, err)
	}
	trip, err := s.trips.CreateTrip(ctx, ownerID, name)
	return trip, s.finish(opCreateTrip, err)
}

// ViewTrip returns the normalized itinerary together with every location, ordered by name.
func (s *ItineraryService) ViewTrip(ctx context.Context, tripID, ownerID string) (*types.TripView, error) {
	it, err := s.trips.GetItinerary(ctx, tripID, ownerID)
	if err != nil {
		return nil, s.finish(opViewTrip, err)
	}
	locations, err := s.locations.ListLocations(ctx)
	if err != nil {
		return nil, s.finish(opViewTrip, err)
	}
	s.finish(opViewTrip, nil)
	return &types.TripView{Itinerary: *it, AvailableLocations: locations}, nil
}

func (s *ItineraryService) DeleteTrip(ctx context.Context, tripID, ownerID string) error {
	return s.finish(opDeleteTrip, s.trips.DeleteTrip(ctx, tripID, ownerID))
}

// AddStop appends a location to the end of the trip.
func (s *ItineraryService) AddStop(ctx context.Context, tripID, ownerID, locationID string) (*types.Itinerary, error) {
	it, err := s.trips.AddStop(ctx, tripID, ownerID, locationID)
	if apperrors.IsType(err, apperrors.DuplicateStopError) {
		logger.ForTrip(tripID, ownerID).Infow("Rejected duplicate stop", "locationId", locationID)
	}
	return it, s.finish(opAddStop, err)
}

func (s *ItineraryService) RemoveStop(ctx context.Context, tripID, ownerID, stopID string) (*types.Itinerary, error) {
	it, err := s.trips.RemoveStop(ctx, tripID, ownerID, stopID)
	return it, s.finish(opRemoveStop, err)
}

// MoveStop swaps the stop with its neighbour. direction must be "up" or "down"; moving
// past either end returns the itinerary unchanged.
func (s *ItineraryService) MoveStop(ctx context.Context, tripID, ownerID, stopID, direction string) (*types.Itinerary, error) {
	dir, ok := types.ParseDirection(direction)
	if !ok {
		return nil, s.finish(opMoveStop, apperrors.InvalidArgument("direction",
			fmt.Sprintf("must be %q or %q, got %q", types.DirectionUp, types.DirectionDown, direction)))
	}

	it, moved, err := s.trips.MoveStop(ctx, tripID, ownerID, stopID, dir)
	if err == nil && !moved {
		logger.ForTrip(tripID, ownerID).Debugw("Stop already at boundary", "stopId", stopID, "direction", dir)
	}
	return it, s.finish(opMoveStop, err)
}

// CreateRandomTrip builds a trip from a uniform sample of distinct locations. count defaults
// to the configured value, is clamped to the configured bounds and capped at the catalog size.
func (s *ItineraryService) CreateRandomTrip(ctx context.Context, ownerID string, count *int) (*types.Itinerary, error) {
	requested := s.cfg.DefaultRandomStops
	if count != nil {
		requested = *count
	}

	pool, err := s.locations.ListLocations(ctx)
	if err != nil {
		return nil, s.finish(opRandomTrip, err)
	}
	minStops := max(s.cfg.RandomMinStops, itinerary.MinRandomStops)
	if len(pool) < minStops {
		return nil, s.finish(opRandomTrip, apperrors.InsufficientLocations(len(pool), minStops))
	}

	n := itinerary.ClampStopCount(requested, minStops, s.cfg.RandomMaxStops, len(pool))
	picked := s.sampler.Sample(pool, n)

	it, err := s.trips.CreateTripWithStops(ctx, ownerID, s.cfg.RandomTripName, picked)
	if err != nil {
		return nil, s.finish(opRandomTrip, err)
	}

	s.metrics.randomTripStops.Observe(float64(len(it.Stops)))
	logger.ForTrip(it.Trip.ID, ownerID).Infow("Created random trip", "requested", requested, "stops", len(it.Stops), "pool", len(pool))
	return it, s.finish(opRandomTrip, nil)
}

func (s *ItineraryService) tripName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return s.cfg.DefaultTripName, nil
	}
	if utf8.RuneCountInString(name) > MaxTripNameLength {
		return "", apperrors.InvalidArgument("name", fmt.Sprintf("must be at most %d characters", MaxTripNameLength))
	}
	return name, nil
}

// finish records the outcome of op and converts store errors into AppErrors.
func (s *ItineraryService) finish(op string, err error) error {
	if err == nil {
		s.metrics.operations.WithLabelValues(op, "ok").Inc()
		return nil
	}

	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		s.metrics.operations.WithLabelValues(op, strings.ToLower(string(appErr.Type))).Inc()
		return appErr
	case errors.Is(err, store.ErrIntegrity):
		logger.GetLogger().Errorw("Itinerary integrity violation", "operation", op, "error", err)
		s.metrics.operations.WithLabelValues(op, "integrity_error").Inc()
		return apperrors.InternalServerError("Trip data is inconsistent")
	default:
		s.metrics.operations.WithLabelValues(op, "database_error").Inc()
		return apperrors.NewDatabaseError(err)
	}
}
