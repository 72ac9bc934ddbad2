package middleware

import (
	"context"
	"time"

	awspkg "github.com/Vinayyy19/Furnista/pkg/aws"
	"github.com/gin-gonic/gin"
)

const metricsTimeout = 5 * time.Second

// MetricsMiddleware ships one request count and latency per route template,
// plus error counters for 4xx and 5xx answers. Health checks are not counted.
func MetricsMiddleware(metricsClient *awspkg.MetricsClient, serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !metricsClient.IsEnabled() || c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		dims := map[string]string{
			"Service": serviceName,
			"Method":  c.Request.Method,
			"Path":    route,
			"Status":  statusClass(status),
		}
		elapsed := time.Since(start)

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), metricsTimeout)
			defer cancel()

			_ = metricsClient.RecordCount(ctx, awspkg.MetricHTTPRequests, dims)
			_ = metricsClient.RecordLatency(ctx, awspkg.MetricHTTPLatency, elapsed, dims)
			for _, name := range errorMetrics(status) {
				_ = metricsClient.RecordCount(ctx, name, dims)
			}
		}()
	}
}

func errorMetrics(status int) []string {
	switch {
	case status >= 500:
		return []string{awspkg.MetricHTTPErrors, awspkg.MetricHTTP5xx}
	case status >= 400:
		return []string{awspkg.MetricHTTPErrors, awspkg.MetricHTTP4xx}
	}
	return nil
}

// statusClass buckets a status code as "2xx", "4xx" and so on.
func statusClass(status int) string {
	if status < 100 || status > 599 {
		return "unknown"
	}
	return string(rune('0'+status/100)) + "xx"
}
