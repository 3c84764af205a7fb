package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"storefront/internal/util"
)

// RateLimit rejects requests past `limit` per `window` per client IP, counted
// in Redis with a fixed window. The limiter degrades open: if Redis is absent
// or a call fails, the request is allowed through.
func RateLimit(rdb *redis.Client, name string, limit int, window time.Duration, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%s", name, c.ClientIP())

		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			util.GetLogger().Warn("rate limiter unavailable",
				zap.String("limiter", name), zap.Error(err))
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(ctx, key, window)
		}

		if count > int64(limit) {
			util.RateLimitedTotal.WithLabelValues(name).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": message,
			})
			return
		}
		c.Next()
	}
}
