package middleware

import "github.com/gin-gonic/gin"

// contextKey defines a type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey holds the authenticated trip owner's ID (string).
	UserIDKey contextKey = "userID"
)

// GetUserID returns the authenticated user's ID, or "" when the request is anonymous.
func GetUserID(c *gin.Context) string {
	return c.GetString(string(UserIDKey))
}
