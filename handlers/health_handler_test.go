package handlers

import (
	"net/http"
	"testing"

	"github.com/corkphoto/itinerary-backend/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		status     types.HealthStatus
		wantStatus int
	}{
		{types.HealthStatusUp, http.StatusOK},
		{types.HealthStatusDegraded, http.StatusOK},
		{types.HealthStatusDown, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			checker := new(MockHealthChecker)
			checker.On("CheckHealth", mock.Anything).Return(types.HealthCheck{Status: tt.status})
			h := NewHealthHandler(checker)

			r := gin.New()
			r.GET("/health", h.DetailedHealth)
			r.GET("/health/liveness", h.LivenessCheck)

			w := doRequest(r, http.MethodGet, "/health", "")
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), string(tt.status))

			w = doRequest(r, http.MethodGet, "/health/liveness", "")
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}
