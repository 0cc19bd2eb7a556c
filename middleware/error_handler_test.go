package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/corkphoto/itinerary-backend/errors"
	"github.com/corkphoto/itinerary-backend/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveError(t *testing.T, attach func(c *gin.Context)) (int, types.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware(), ErrorHandler())
	r.GET("/fail", attach)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

	var body types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		errType    gin.ErrorType
		wantStatus int
		wantType   string
		wantDetail bool
	}{
		{"not found", apperrors.NotFound("Trip", "t1"), gin.ErrorTypePrivate, http.StatusNotFound, "NOT_FOUND", true},
		{"forbidden", apperrors.TripAccessDenied("u1", "t1"), gin.ErrorTypePrivate, http.StatusForbidden, "FORBIDDEN", false},
		{"duplicate", apperrors.DuplicateStop("t1", "l1"), gin.ErrorTypePrivate, http.StatusConflict, "DUPLICATE_STOP", true},
		{"mismatch", apperrors.StopMismatch("s1", "t1"), gin.ErrorTypePrivate, http.StatusBadRequest, "STOP_TRIP_MISMATCH", true},
		{"database", apperrors.NewDatabaseError(errors.New("secret dsn leaked")), gin.ErrorTypePrivate, http.StatusInternalServerError, "DATABASE_ERROR", false},
		{"bind", errors.New("Key: 'AddStopRequest.LocationID' failed"), gin.ErrorTypeBind, http.StatusBadRequest, "VALIDATION_ERROR", true},
		{"unknown", errors.New("boom"), gin.ErrorTypePrivate, http.StatusInternalServerError, "SERVER_ERROR", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := serveError(t, func(c *gin.Context) {
				_ = c.Error(tt.err).SetType(tt.errType)
			})

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantType, body.Type)
			assert.NotEmpty(t, body.Message)
			if !tt.wantDetail {
				assert.NotContains(t, body.Details, "secret")
			}
		})
	}
}

func TestErrorHandler_NoErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "fine") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fine", w.Body.String())
}
