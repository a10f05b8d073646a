// Package endpoint contains the HTTP handlers for the public API. Handlers
// are thin: decode, validate, call one operation, map the outcome to a
// status code.
package endpoint

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cinevault/cinevault/component"
	"github.com/cinevault/cinevault/version"
)

// HealthChecker returns health status for registered components.
type HealthChecker func(ctx context.Context) []component.Health

// Health is the liveness probe. It answers as long as the process serves
// requests, regardless of dependency state.
func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// Ready reports per-component health. A degraded component (for example a
// store that was never configured) does not fail readiness; an unhealthy one
// does.
func Ready(checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := component.StatusHealthy
		var components []component.Health

		if checker != nil {
			components = checker(c.Request.Context())
			for _, ch := range components {
				if ch.Status == component.StatusUnhealthy {
					status = component.StatusUnhealthy
					break
				}
				if ch.Status == component.StatusDegraded {
					status = component.StatusDegraded
				}
			}
		}

		httpStatus := http.StatusOK
		if status == component.StatusUnhealthy {
			httpStatus = http.StatusServiceUnavailable
		}

		c.JSON(httpStatus, gin.H{
			"status":     status,
			"version":    version.Get(),
			"components": components,
		})
	}
}
