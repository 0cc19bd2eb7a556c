package service

import (
	"context"

	"github.com/corkphoto/itinerary-backend/types"
)

// CatalogServiceInterface is the location catalog as seen by the HTTP layer.
type CatalogServiceInterface interface {
	ListLocations(ctx context.Context) ([]types.Location, error)
	GetLocation(ctx context.Context, id string) (*types.Location, error)
	CreateLocation(ctx context.Context, req types.CreateLocationRequest) (*types.Location, error)
}
