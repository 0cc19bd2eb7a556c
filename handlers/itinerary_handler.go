package handlers

import (
	"net/http"

	apperrors "github.com/corkphoto/itinerary-backend/errors"
	"github.com/corkphoto/itinerary-backend/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ItineraryHandler exposes trips and their ordered stops. Every handler acts on behalf of the
// authenticated owner; ownership itself is enforced by the service.
type ItineraryHandler struct {
	service ItineraryServiceInterface
}

func NewItineraryHandler(service ItineraryServiceInterface) *ItineraryHandler {
	registerValidators()
	return &ItineraryHandler{service: service}
}

// ListTripsHandler handles GET /v1/trips.
func (h *ItineraryHandler) ListTripsHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	trips, err := h.service.ListTrips(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if trips == nil {
		trips = []types.Trip{}
	}
	c.JSON(http.StatusOK, types.ListResponse[types.Trip]{Data: trips, Total: len(trips)})
}

// CreateTripHandler handles POST /v1/trips. The body and its name are optional.
func (h *ItineraryHandler) CreateTripHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req types.CreateTripRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	trip, err := h.service.CreateTrip(c.Request.Context(), userID, req.Name)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, types.Itinerary{Trip: *trip, Stops: []types.Stop{}})
}

// CreateRandomTripHandler handles POST /v1/trips/random.
func (h *ItineraryHandler) CreateRandomTripHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req types.RandomTripRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	it, err := h.service.CreateRandomTrip(c.Request.Context(), userID, req.Count)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, it)
}

// GetTripHandler handles GET /v1/trips/:id.
func (h *ItineraryHandler) GetTripHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tripID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	view, err := h.service.ViewTrip(c.Request.Context(), tripID, userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// DeleteTripHandler handles DELETE /v1/trips/:id.
func (h *ItineraryHandler) DeleteTripHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tripID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteTrip(c.Request.Context(), tripID, userID); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddStopHandler handles POST /v1/trips/:id/stops.
func (h *ItineraryHandler) AddStopHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tripID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req types.AddStopRequest
	if !bindJSONOrError(c, &req) {
		return
	}
	locationID, err := uuid.Parse(req.LocationID)
	if err != nil {
		_ = c.Error(apperrors.InvalidArgument("locationId", "must be a UUID"))
		return
	}

	it, err := h.service.AddStop(c.Request.Context(), tripID, userID, locationID.String())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, it)
}

// RemoveStopHandler handles DELETE /v1/trips/:id/stops/:stopId.
func (h *ItineraryHandler) RemoveStopHandler(c *gin.Context) {
	h.withStop(c, func(c *gin.Context, tripID, userID, stopID string) (*types.Itinerary, error) {
		return h.service.RemoveStop(c.Request.Context(), tripID, userID, stopID)
	})
}

// MoveStopHandler handles POST /v1/trips/:id/stops/:stopId/move.
func (h *ItineraryHandler) MoveStopHandler(c *gin.Context) {
	h.withStop(c, func(c *gin.Context, tripID, userID, stopID string) (*types.Itinerary, error) {
		var req types.MoveStopRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, apperrors.ValidationFailed("Invalid request payload", err.Error())
		}
		return h.service.MoveStop(c.Request.Context(), tripID, userID, stopID, req.Direction)
	})
}

func (h *ItineraryHandler) withStop(c *gin.Context, fn func(c *gin.Context, tripID, userID, stopID string) (*types.Itinerary, error)) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	tripID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	stopID, ok := uuidParam(c, "stopId")
	if !ok {
		return
	}

	it, err := fn(c, tripID, userID, stopID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, it)
}
