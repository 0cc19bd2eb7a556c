package service

import (
	"context"

	"github.com/corkphoto/itinerary-backend/types"
	"github.com/stretchr/testify/mock"
)

type MockItineraryStore struct {
	mock.Mock
}

func (m *MockItineraryStore) ListTrips(ctx context.Context, ownerID string) ([]types.Trip, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Trip), args.Error(1)
}

func (m *MockItineraryStore) CreateTrip(ctx context.Context, ownerID, name string) (*types.Trip, error) {
	args := m.Called(ctx, ownerID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Trip), args.Error(1)
}

func (m *MockItineraryStore) DeleteTrip(ctx context.Context, tripID, ownerID string) error {
	args := m.Called(ctx, tripID, ownerID)
	return args.Error(0)
}

func (m *MockItineraryStore) GetItinerary(ctx context.Context, tripID, ownerID string) (*types.Itinerary, error) {
	args := m.Called(ctx, tripID, ownerID)
	return itineraryArg(args), args.Error(1)
}

func (m *MockItineraryStore) AddStop(ctx context.Context, tripID, ownerID, locationID string) (*types.Itinerary, error) {
	args := m.Called(ctx, tripID, ownerID, locationID)
	return itineraryArg(args), args.Error(1)
}

func (m *MockItineraryStore) RemoveStop(ctx context.Context, tripID, ownerID, stopID string) (*types.Itinerary, error) {
	args := m.Called(ctx, tripID, ownerID, stopID)
	return itineraryArg(args), args.Error(1)
}

func (m *MockItineraryStore) MoveStop(ctx context.Context, tripID, ownerID, stopID string, dir types.Direction) (*types.Itinerary, bool, error) {
	args := m.Called(ctx, tripID, ownerID, stopID, dir)
	return itineraryArg(args), args.Bool(1), args.Error(2)
}

func (m *MockItineraryStore) CreateTripWithStops(ctx context.Context, ownerID, name string, locations []types.Location) (*types.Itinerary, error) {
	args := m.Called(ctx, ownerID, name, locations)
	return itineraryArg(args), args.Error(1)
}

func (m *MockItineraryStore) Normalize(ctx context.Context, tripID string) (int, error) {
	args := m.Called(ctx, tripID)
	return args.Int(0), args.Error(1)
}

func itineraryArg(args mock.Arguments) *types.Itinerary {
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*types.Itinerary)
}

type MockLocationStore struct {
	mock.Mock
}

func (m *MockLocationStore) ListLocations(ctx context.Context) ([]types.Location, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Location), args.Error(1)
}

func (m *MockLocationStore) GetLocation(ctx context.Context, id string) (*types.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Location), args.Error(1)
}

func (m *MockLocationStore) CreateLocation(ctx context.Context, loc types.Location) (*types.Location, error) {
	args := m.Called(ctx, loc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Location), args.Error(1)
}
