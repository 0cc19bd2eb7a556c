package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/corkphoto/itinerary-backend/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func corsRequest(origins []string, method, origin string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware(&config.ServerConfig{AllowedOrigins: origins}))
	r.GET("/trips", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, "/trips", nil)
	req.Header.Set("Origin", origin)
	if method == http.MethodOptions {
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestCORSMiddleware(t *testing.T) {
	t.Run("wildcard allows any origin", func(t *testing.T) {
		w := corsRequest([]string{"*"}, http.MethodGet, "https://example.org")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("listed origin allowed", func(t *testing.T) {
		w := corsRequest([]string{"https://trips.example.com"}, http.MethodGet, "https://trips.example.com")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://trips.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("unlisted origin forbidden", func(t *testing.T) {
		w := corsRequest([]string{"https://trips.example.com"}, http.MethodGet, "https://evil.example.net")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		w := corsRequest([]string{"https://trips.example.com"}, http.MethodOptions, "https://trips.example.com")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)
	})
}
