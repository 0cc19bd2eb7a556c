package handlers

import (
	"context"

	"github.com/corkphoto/itinerary-backend/types"
	"github.com/stretchr/testify/mock"
)

type MockItineraryService struct {
	mock.Mock
}

var _ ItineraryServiceInterface = (*MockItineraryService)(nil)

func (m *MockItineraryService) ListTrips(ctx context.Context, ownerID string) ([]types.Trip, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Trip), args.Error(1)
}

func (m *MockItineraryService) CreateTrip(ctx context.Context, ownerID, name string) (*types.Trip, error) {
	args := m.Called(ctx, ownerID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Trip), args.Error(1)
}

func (m *MockItineraryService) CreateRandomTrip(ctx context.Context, ownerID string, count *int) (*types.Itinerary, error) {
	args := m.Called(ctx, ownerID, count)
	return itineraryResult(args)
}

func (m *MockItineraryService) ViewTrip(ctx context.Context, tripID, ownerID string) (*types.TripView, error) {
	args := m.Called(ctx, tripID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TripView), args.Error(1)
}

func (m *MockItineraryService) DeleteTrip(ctx context.Context, tripID, ownerID string) error {
	return m.Called(ctx, tripID, ownerID).Error(0)
}

func (m *MockItineraryService) AddStop(ctx context.Context, tripID, ownerID, locationID string) (*types.Itinerary, error) {
	return itineraryResult(m.Called(ctx, tripID, ownerID, locationID))
}

func (m *MockItineraryService) RemoveStop(ctx context.Context, tripID, ownerID, stopID string) (*types.Itinerary, error) {
	return itineraryResult(m.Called(ctx, tripID, ownerID, stopID))
}

func (m *MockItineraryService) MoveStop(ctx context.Context, tripID, ownerID, stopID, direction string) (*types.Itinerary, error) {
	return itineraryResult(m.Called(ctx, tripID, ownerID, stopID, direction))
}

func itineraryResult(args mock.Arguments) (*types.Itinerary, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Itinerary), args.Error(1)
}

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListLocations(ctx context.Context) ([]types.Location, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Location), args.Error(1)
}

func (m *MockCatalogService) GetLocation(ctx context.Context, id string) (*types.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Location), args.Error(1)
}

func (m *MockCatalogService) CreateLocation(ctx context.Context, req types.CreateLocationRequest) (*types.Location, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Location), args.Error(1)
}

type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) CheckHealth(ctx context.Context) types.HealthCheck {
	return m.Called(ctx).Get(0).(types.HealthCheck)
}
