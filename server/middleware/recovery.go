package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	apperrors "github.com/cinevault/cinevault/errors"
	"github.com/cinevault/cinevault/logger"
)

// Recovery returns a Gin middleware that recovers from panics and logs the stack.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error("Panic recovered", map[string]interface{}{
					"error":     fmt.Sprintf("%v", err),
					"stack":     string(debug.Stack()),
					"path":      c.Request.URL.Path,
					"method":    c.Request.Method,
					"client_ip": c.ClientIP(),
				})
				internal := apperrors.Internal(fmt.Errorf("%v", err))
				c.AbortWithStatusJSON(internal.HTTPStatus, internal.ToResponse())
			}
		}()
		c.Next()
	}
}
