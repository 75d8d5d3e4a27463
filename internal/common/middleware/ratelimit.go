package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"social-verifier-backend/internal/common/logger"
	redisplatform "social-verifier-backend/internal/platform/redis"
)

// RateLimit caps verification attempts per client IP over a one-minute
// window, backed by Redis. With no Redis client or a non-positive limit it is
// a no-op; a Redis failure fails open so the limiter never takes the
// verifier down with it.
func RateLimit(rdb *redisplatform.Client, perMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || perMinute <= 0 {
			c.Next()
			return
		}

		key := "ratelimit:" + c.ClientIP()
		hits, err := rdb.Hit(c.Request.Context(), key, time.Minute)
		if err != nil {
			logger.Warn().Err(err).Msg("rate limiter unavailable, passing request through")
			c.Next()
			return
		}

		if hits > int64(perMinute) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"errorText": "too many verification attempts, slow down",
			})
			return
		}

		c.Next()
	}
}
