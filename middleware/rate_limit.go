package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	apperrors "github.com/corkphoto/itinerary-backend/errors"
	"github.com/corkphoto/itinerary-backend/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const rateLimitKeyPrefix = "ratelimit:itinerary:"

// RateLimitClient is the subset of redis commands the limiter uses.
type RateLimitClient interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

// MutationRateLimiter counts mutating requests per user in a fixed Redis window. Requests are
// let through when Redis is unavailable.
func MutationRateLimiter(client RateLimitClient, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := rateLimitKey(c)

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			logger.GetLogger().Warnw("Rate limit check failed, allowing request", "key", key, "error", err)
			c.Next()
			return
		}
		if count == 1 {
			if err := client.Expire(ctx, key, window).Err(); err != nil {
				logger.GetLogger().Warnw("Failed to set rate limit window", "key", key, "error", err)
			}
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))

		if count > int64(limit) {
			ttl, err := client.TTL(ctx, key).Result()
			if err != nil || ttl <= 0 {
				ttl = window
			}
			retryAfter := int(ttl.Seconds())

			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			_ = c.Error(apperrors.RateLimitExceeded("Too many changes. Please try again later.", retryAfter))
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.FormatInt(int64(limit)-count, 10))
		c.Next()
	}
}

func rateLimitKey(c *gin.Context) string {
	if userID := GetUserID(c); userID != "" {
		return rateLimitKeyPrefix + userID
	}
	return fmt.Sprintf("%sip:%s", rateLimitKeyPrefix, c.ClientIP())
}
