package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// HTTPMetrics records request latency. *metrics.Metrics satisfies it.
type HTTPMetrics interface {
	ObserveHTTP(method, route string, status int, start time.Time)
}

// Metrics observes every request under its route template, so
// /applicants/7 and /applicants/8 share one series.
func Metrics(m HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTP(c.Request.Method, route, c.Writer.Status(), start)
	}
}
