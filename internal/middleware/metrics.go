package middleware

import (
	"strconv"
	"time"

	"github.com/DarkZone24/inventory-monitoring-system/internal/infra"

	"github.com/gin-gonic/gin"
)

// Metrics records request count and latency labelled by route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		infra.HTTPRequestDuration.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
		infra.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
	}
}
