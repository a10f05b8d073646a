package endpoint

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/cinevault/cinevault/errors"
	"github.com/cinevault/cinevault/server/middleware"
	"github.com/cinevault/cinevault/store"
	"github.com/cinevault/cinevault/validation"
)

// FavoriteStore is the persistence surface the favorites handlers need.
type FavoriteStore interface {
	List(ctx context.Context, ownerID string, page, limit int) ([]store.Favorite, int64, error)
	Create(ctx context.Context, ownerID string, input store.FavoriteInput) (*store.Favorite, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type createFavoriteRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Poster      string `json:"poster"`
	ReleaseDate string `json:"releaseDate"`
	TmdbID      int64  `json:"tmdbId"`
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListFavorites returns one page of the caller's favorites, newest first.
func ListFavorites(favorites FavoriteStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, ok := middleware.IdentityFrom(c)
		if !ok {
			respondError(c, apperrors.Unauthorized())
			return
		}

		page := queryInt(c, "page", 1)
		limit := queryInt(c, "limit", defaultPageSize)
		if page < 1 {
			page = 1
		}
		if limit < 1 || limit > maxPageSize {
			limit = defaultPageSize
		}

		items, total, err := favorites.List(c.Request.Context(), ownerID, page, limit)
		if err != nil {
			respondError(c, err)
			return
		}

		totalPages := int((total + int64(limit) - 1) / int64(limit))
		c.JSON(http.StatusOK, PageResponse{
			Items:      items,
			Page:       page,
			TotalPages: totalPages,
			Total:      total,
		})
	}
}

// CreateFavorite saves a movie for the caller.
func CreateFavorite(favorites FavoriteStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, ok := middleware.IdentityFrom(c)
		if !ok {
			respondError(c, apperrors.Unauthorized())
			return
		}

		var req createFavoriteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, apperrors.InvalidPayload("malformed request body"))
			return
		}
		if err := validation.Validate(req); err != nil {
			respondError(c, err)
			return
		}

		favorite, err := favorites.Create(c.Request.Context(), ownerID, store.FavoriteInput{
			Title:       req.Title,
			Description: req.Description,
			Poster:      req.Poster,
			ReleaseDate: req.ReleaseDate,
			TmdbID:      req.TmdbID,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, favorite)
	}
}

// DeleteFavorite removes one of the caller's favorites by id.
func DeleteFavorite(favorites FavoriteStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, ok := middleware.IdentityFrom(c)
		if !ok {
			respondError(c, apperrors.Unauthorized())
			return
		}

		if err := favorites.Delete(c.Request.Context(), ownerID, c.Param("id")); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// queryInt parses an integer query parameter, falling back to def on absence
// or garbage.
func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
