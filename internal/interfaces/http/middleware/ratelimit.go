package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parlourcover/parlour/internal/infrastructure/ratelimit"
	"github.com/parlourcover/parlour/internal/shared/logger"
	"github.com/parlourcover/parlour/internal/shared/utils"
)

// RateLimiter limits requests per client IP. The backing limiter is Redis in
// multi-instance deployments and in-memory otherwise.
type RateLimiter struct {
	limiter ratelimit.RateLimiter
	limit   int
	window  time.Duration
	logger  logger.Interface
}

// NewRateLimiter creates a per-IP rate limiter.
// limit is the maximum number of requests allowed per window; zero disables it.
func NewRateLimiter(limiter ratelimit.RateLimiter, limit int, window time.Duration, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		limit:   limit,
		window:  window,
		logger:  logger,
	}
}

// Limit returns a Gin middleware that enforces the rate limit per client IP.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limit <= 0 {
			c.Next()
			return
		}

		allowed, err := rl.limiter.Allow(c.Request.Context(), "ip:"+c.ClientIP(), rl.limit, rl.window)
		if err != nil {
			// If the store is unavailable, allow the request to avoid blocking all traffic
			rl.logger.Warnw("rate limiter unavailable", "error", err)
			c.Next()
			return
		}

		if !allowed {
			rl.logger.Warnw("rate limit exceeded", "client_ip", c.ClientIP(), "path", c.Request.URL.Path)
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
