package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/corkphoto/itinerary-backend/config"
	"github.com/corkphoto/itinerary-backend/handlers"
	"github.com/corkphoto/itinerary-backend/middleware"
	"github.com/corkphoto/itinerary-backend/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticHealth struct{}

func (staticHealth) CheckHealth(context.Context) types.HealthCheck {
	return types.HealthCheck{Status: types.HealthStatusUp}
}

func newTestRouter(t *testing.T, limiterHits *int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	v, err := middleware.NewJWTValidator("router-test-secret-that-is-long-enough")
	require.NoError(t, err)

	return SetupRouter(Dependencies{
		Config:           &config.Config{Server: config.ServerConfig{AllowedOrigins: []string{"*"}}},
		JWTValidator:     v,
		ItineraryHandler: handlers.NewItineraryHandler(nil),
		LocationHandler:  handlers.NewLocationHandler(nil),
		HealthHandler:    handlers.NewHealthHandler(staticHealth{}),
		RateLimiter: func(c *gin.Context) {
			*limiterHits++
			c.Next()
		},
	})
}

func TestSetupRouter_Routes(t *testing.T) {
	hits := 0
	r := newTestRouter(t, &hits)

	registered := map[string]bool{}
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"GET /health",
		"GET /health/liveness",
		"GET /metrics",
		"GET /v1/trips",
		"POST /v1/trips",
		"POST /v1/trips/random",
		"GET /v1/trips/:id",
		"DELETE /v1/trips/:id",
		"POST /v1/trips/:id/stops",
		"DELETE /v1/trips/:id/stops/:stopId",
		"POST /v1/trips/:id/stops/:stopId/move",
		"GET /v1/locations",
		"GET /v1/locations/:id",
		"POST /v1/locations",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}
}

func TestSetupRouter_AuthRequired(t *testing.T) {
	hits := 0
	r := newTestRouter(t, &hits)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/v1/trips"},
		{http.MethodPost, "/v1/trips/random"},
		{http.MethodPost, "/v1/trips/5b0c3f44-7c0e-4d6e-9a8f-1f3a2b4c5d6e/stops"},
		{http.MethodGet, "/v1/locations"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}
	assert.Zero(t, hits, "rate limiter must run after authentication")
}

func TestSetupRouter_OpsEndpoints(t *testing.T) {
	hits := 0
	r := newTestRouter(t, &hits)

	for _, path := range []string{"/health", "/health/liveness", "/metrics"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	}
}
