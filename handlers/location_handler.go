package handlers

import (
	"net/http"

	locationservice "github.com/corkphoto/itinerary-backend/models/location/service"
	"github.com/corkphoto/itinerary-backend/types"
	"github.com/gin-gonic/gin"
)

type LocationHandler struct {
	service locationservice.CatalogServiceInterface
}

func NewLocationHandler(service locationservice.CatalogServiceInterface) *LocationHandler {
	return &LocationHandler{service: service}
}

// ListLocationsHandler handles GET /v1/locations.
func (h *LocationHandler) ListLocationsHandler(c *gin.Context) {
	locations, err := h.service.ListLocations(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	if locations == nil {
		locations = []types.Location{}
	}
	c.JSON(http.StatusOK, types.ListResponse[types.Location]{Data: locations, Total: len(locations)})
}

// GetLocationHandler handles GET /v1/locations/:id.
func (h *LocationHandler) GetLocationHandler(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	loc, err := h.service.GetLocation(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, loc)
}

// CreateLocationHandler handles POST /v1/locations.
func (h *LocationHandler) CreateLocationHandler(c *gin.Context) {
	var req types.CreateLocationRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	loc, err := h.service.CreateLocation(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, loc)
}
