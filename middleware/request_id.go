package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDKey is the key used to store the request ID in the gin context
	RequestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
)

// RequestIDMiddleware propagates an upstream X-Request-ID or generates one.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDKey, requestID)
		c.Header(requestIDHeader, requestID)

		c.Next()
	}
}
