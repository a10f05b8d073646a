package endpoint

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/cinevault/cinevault/errors"
)

// PageResponse is the envelope for paginated listings.
type PageResponse struct {
	Items      any   `json:"items"`
	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
	Total      int64 `json:"total"`
}

// TokenResponse carries a freshly issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// respondError maps err onto the wire: an *apperrors.AppError keeps its
// status and code; anything else collapses to a 500 internal_error.
func respondError(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		c.JSON(appErr.HTTPStatus, appErr.ToResponse())
		return
	}
	c.JSON(http.StatusInternalServerError, apperrors.Internal(err).ToResponse())
}
