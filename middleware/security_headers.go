package middleware

import (
	"github.com/corkphoto/itinerary-backend/config"
	"github.com/gin-gonic/gin"
)

// SecurityHeadersMiddleware adds the usual hardening headers. HSTS is only sent in production.
func SecurityHeadersMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		if cfg.IsProduction() {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
