package endpoint

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cinevault/cinevault/tmdb"
)

// Catalog is the upstream movie-catalog surface the films handler needs.
type Catalog interface {
	Search(ctx context.Context, query string, page int) (*tmdb.Page, error)
}

// Films proxies catalog queries: a non-empty q searches by title, an empty
// one lists popular films.
func Films(catalog Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := catalog.Search(c.Request.Context(), c.Query("q"), queryInt(c, "page", 1))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, PageResponse{
			Items:      page.Items,
			Page:       page.Page,
			TotalPages: page.TotalPages,
			Total:      int64(page.Total),
		})
	}
}
