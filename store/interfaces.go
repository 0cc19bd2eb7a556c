// Package store defines the persistence contracts of the itinerary service.
package store

import (
	"context"

	"github.com/corkphoto/itinerary-backend/types"
)

// ItineraryStore persists trips and their ordered stops.
//
// Every method that takes an ownerID locks the trip row and verifies ownership inside the
// same transaction as the read or mutation. Every method that returns stops returns them
// normalized to positions 1..N.
type ItineraryStore interface {
	ListTrips(ctx context.Context, ownerID string) ([]types.Trip, error)
	CreateTrip(ctx context.Context, ownerID, name string) (*types.Trip, error)
	DeleteTrip(ctx context.Context, tripID, ownerID string) error

	GetItinerary(ctx context.Context, tripID, ownerID string) (*types.Itinerary, error)
	AddStop(ctx context.Context, tripID, ownerID, locationID string) (*types.Itinerary, error)
	RemoveStop(ctx context.Context, tripID, ownerID, stopID string) (*types.Itinerary, error)
	// MoveStop swaps a stop with its neighbour. moved is false when the stop is already at the boundary.
	MoveStop(ctx context.Context, tripID, ownerID, stopID string, dir types.Direction) (it *types.Itinerary, moved bool, err error)

	// CreateTripWithStops creates a trip and stops at positions 1..len(locations) atomically.
	CreateTripWithStops(ctx context.Context, ownerID, name string, locations []types.Location) (*types.Itinerary, error)

	// Normalize renumbers a trip's stops to 1..N and reports how many rows were rewritten.
	Normalize(ctx context.Context, tripID string) (int, error)
}

// LocationStore is the read-mostly location catalog that stops reference.
type LocationStore interface {
	ListLocations(ctx context.Context) ([]types.Location, error)
	GetLocation(ctx context.Context, id string) (*types.Location, error)
	// CreateLocation returns ErrSlugTaken when the slug is already used.
	CreateLocation(ctx context.Context, loc types.Location) (*types.Location, error)
}
