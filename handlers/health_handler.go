package handlers

import (
	"net/http"

	"github.com/corkphoto/itinerary-backend/types"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthService HealthChecker
}

func NewHealthHandler(healthService HealthChecker) *HealthHandler {
	return &HealthHandler{healthService: healthService}
}

// LivenessCheck answers as long as the process serves HTTP.
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": types.HealthStatusUp})
}

// DetailedHealth returns 503 when the database is down and 200 otherwise.
func (h *HealthHandler) DetailedHealth(c *gin.Context) {
	health := h.healthService.CheckHealth(c.Request.Context())
	if health.Status == types.HealthStatusDown {
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}
	c.JSON(http.StatusOK, health)
}
