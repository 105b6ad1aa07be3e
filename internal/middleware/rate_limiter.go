package middleware

import (
	"net/http"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/cache"
	"github.com/fekuna/omnipos-storefront-service/internal/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimiter allows maxRequests per client IP, method and route pattern within window.
func RateLimiter(counter cache.Counter, maxRequests int, window time.Duration, log logger.ZapLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Key is per-IP, per-method, per-route. The route pattern keeps the
		// key space bounded whatever paths clients send.
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		key := "rl:" + c.ClientIP() + ":" + c.Request.Method + ":" + route

		count, resetAt, err := counter.Incr(c.Request.Context(), key, window)
		if err != nil {
			log.Error("rate limiter unavailable", zap.Error(err))
			c.JSON(http.StatusInternalServerError, response.Error(c, "Internal server error"))
			c.Abort()
			return
		}

		remaining := max(maxRequests-int(count), 0)
		resetIn := max(int(time.Until(resetAt).Seconds()), 0)

		rate := &response.RateLimit{
			Limit:          maxRequests,
			Remaining:      remaining,
			ResetAt:        resetAt,
			ResetInSeconds: resetIn,
		}
		c.Set(response.RateLimitKey, rate)

		if int(count) > maxRequests {
			c.JSON(http.StatusTooManyRequests, response.ApiResponse{
				Message: "Too many requests",
				Error:   true,
				Rate:    rate,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
