package middleware

import (
	"errors"
	"strings"

	apperrors "github.com/corkphoto/itinerary-backend/errors"
	"github.com/corkphoto/itinerary-backend/logger"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware requires a valid bearer token and stores its subject under UserIDKey.
func AuthMiddleware(validator Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.GetLogger()

		authHeader := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			_ = c.Error(apperrors.AuthenticationFailed("Authorization required"))
			c.Abort()
			return
		}

		userID, err := validator.Validate(token)
		if err != nil {
			log.Warnw("Invalid JWT token",
				"error", err,
				"path", c.Request.URL.Path,
				"client_ip", c.ClientIP())

			message := "Invalid authentication token"
			if errors.Is(err, ErrTokenExpired) {
				message = "Your session has expired"
			}
			_ = c.Error(apperrors.AuthenticationFailed(message))
			c.Abort()
			return
		}

		c.Set(string(UserIDKey), userID)
		c.Next()
	}
}
