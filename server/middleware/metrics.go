package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics returns middleware recording request count and latency. With no
// meter provider configured the instruments are no-ops.
func Metrics() gin.HandlerFunc {
	meter := otel.Meter("github.com/cinevault/cinevault/server")

	requests, _ := meter.Int64Counter("http.server.requests",
		metric.WithDescription("Completed HTTP requests"))
	duration, _ := meter.Float64Histogram("http.server.duration",
		metric.WithDescription("HTTP request duration"),
		metric.WithUnit("ms"))

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		attrs := metric.WithAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", route),
			attribute.Int("http.status_code", c.Writer.Status()),
		)
		ctx := c.Request.Context()
		requests.Add(ctx, 1, attrs)
		duration.Record(ctx, float64(time.Since(start).Milliseconds()), attrs)
	}
}
