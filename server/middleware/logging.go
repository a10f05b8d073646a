package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cinevault/cinevault/logger"
)

// RequestLogger returns middleware that logs every request with method,
// path, status code, and duration. Health-check paths are silently skipped.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isHealthEndpoint(c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		path := c.Request.URL.Path
		if q := c.Request.URL.RawQuery; q != "" {
			path = path + "?" + q
		}

		fields := map[string]interface{}{
			"method":             c.Request.Method,
			"path":               path,
			logger.FieldStatus:   status,
			logger.FieldDuration: latency.Milliseconds(),
			"client":             c.ClientIP(),
		}
		if id := c.GetString("request_id"); id != "" {
			fields[logger.FieldRequestID] = id
		}
		if latency > 500*time.Millisecond {
			fields["slow"] = true
		}

		switch {
		case status >= 500:
			log.Error("Request completed", fields)
		case status >= 400:
			log.Warn("Request completed", fields)
		default:
			log.Debug("Request completed", fields)
		}
	}
}

func isHealthEndpoint(path string) bool {
	switch path {
	case "/health", "/ready", "/api/health", "/api/ready":
		return true
	}
	return false
}
