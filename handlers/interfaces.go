package handlers

import (
	"context"

	"github.com/corkphoto/itinerary-backend/types"
)

// ItineraryServiceInterface is the itinerary service as used by ItineraryHandler.
type ItineraryServiceInterface interface {
	ListTrips(ctx context.Context, ownerID string) ([]types.Trip, error)
	CreateTrip(ctx context.Context, ownerID, name string) (*types.Trip, error)
	CreateRandomTrip(ctx context.Context, ownerID string, count *int) (*types.Itinerary, error)
	ViewTrip(ctx context.Context, tripID, ownerID string) (*types.TripView, error)
	DeleteTrip(ctx context.Context, tripID, ownerID string) error
	AddStop(ctx context.Context, tripID, ownerID, locationID string) (*types.Itinerary, error)
	RemoveStop(ctx context.Context, tripID, ownerID, stopID string) (*types.Itinerary, error)
	MoveStop(ctx context.Context, tripID, ownerID, stopID, direction string) (*types.Itinerary, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	CheckHealth(ctx context.Context) types.HealthCheck
}
