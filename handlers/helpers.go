package handlers

import (
	"errors"
	"io"

	apperrors "github.com/corkphoto/itinerary-backend/errors"
	"github.com/corkphoto/itinerary-backend/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requireUserID returns the authenticated owner or records an auth error.
func requireUserID(c *gin.Context) (string, bool) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		_ = c.Error(apperrors.AuthenticationFailed("No authenticated user"))
		return "", false
	}
	return userID, true
}

// uuidParam reads a path parameter that must be a UUID.
func uuidParam(c *gin.Context, name string) (string, bool) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		_ = c.Error(apperrors.InvalidArgument(name, "must be a UUID"))
		return "", false
	}
	return id.String(), true
}

// bindJSONOrError binds the request body and records a validation error on failure.
func bindJSONOrError(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		_ = c.Error(apperrors.ValidationFailed("Invalid request payload", err.Error()))
		return false
	}
	return true
}

// bindOptionalJSON is bindJSONOrError for endpoints whose body may be empty.
func bindOptionalJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	_ = c.Error(apperrors.ValidationFailed("Invalid request payload", err.Error()))
	return false
}
