package endpoint

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	apperrors "github.com/cinevault/cinevault/errors"
	"github.com/cinevault/cinevault/server/middleware"
	"github.com/cinevault/cinevault/store"
)

// fakeFavorites is an in-memory favorites store scoped by owner.
type fakeFavorites struct {
	items       map[string][]store.Favorite
	unavailable bool
}

func newFakeFavorites() *fakeFavorites {
	return &fakeFavorites{items: make(map[string][]store.Favorite)}
}

func (f *fakeFavorites) List(ctx context.Context, ownerID string, page, limit int) ([]store.Favorite, int64, error) {
	if f.unavailable {
		return nil, 0, apperrors.DBUnavailable()
	}
	all := f.items[ownerID]
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	out := make([]store.Favorite, 0, end-start)
	out = append(out, all[start:end]...)
	return out, int64(len(all)), nil
}

func (f *fakeFavorites) Create(ctx context.Context, ownerID string, input store.FavoriteInput) (*store.Favorite, error) {
	if f.unavailable {
		return nil, apperrors.DBUnavailable()
	}
	fav := store.Favorite{
		ID:          bson.NewObjectID(),
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: input.Description,
		Poster:      input.Poster,
		ReleaseDate: input.ReleaseDate,
		TmdbID:      input.TmdbID,
	}
	f.items[ownerID] = append(f.items[ownerID], fav)
	return &fav, nil
}

func (f *fakeFavorites) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := bson.ObjectIDFromHex(id); err != nil {
		return apperrors.InvalidID()
	}
	if f.unavailable {
		return apperrors.DBUnavailable()
	}
	for i, fav := range f.items[ownerID] {
		if fav.ID.Hex() == id {
			f.items[ownerID] = append(f.items[ownerID][:i], f.items[ownerID][i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("favorite")
}

// asIdentity injects a fixed identity, standing in for the auth gate.
func asIdentity(id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.IdentityKey, id)
		c.Next()
	}
}

func favoritesRouter(favorites FavoriteStore, ownerID string) *gin.Engine {
	r := gin.New()
	grp := r.Group("/api", asIdentity(ownerID))
	grp.GET("/favorites", ListFavorites(favorites))
	grp.POST("/favorites", CreateFavorite(favorites))
	grp.DELETE("/favorites/:id", DeleteFavorite(favorites))
	return r
}

// ----------------------------------------------------------------------------
// List
// ----------------------------------------------------------------------------

func TestListFavorites_EmptyIsArray(t *testing.T) {
	r := favoritesRouter(newFakeFavorites(), "owner-1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/favorites", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"items":[]`) {
		t.Errorf("expected items:[] for an empty list, got %s", w.Body.String())
	}
}

func TestListFavorites_Pagination(t *testing.T) {
	favorites := newFakeFavorites()
	r := favoritesRouter(favorites, "owner-1")

	for i := 0; i < 5; i++ {
		if w := postJSON(r, "/api/favorites", `{"title":"Movie"}`); w.Code != http.StatusCreated {
			t.Fatalf("seed create: expected 201, got %d", w.Code)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/favorites?page=2&limit=2", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Items      []store.Favorite `json:"items"`
		Page       int              `json:"page"`
		TotalPages int              `json:"totalPages"`
		Total      int64            `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Page != 2 || body.Total != 5 || body.TotalPages != 3 {
		t.Errorf("unexpected envelope: %+v", body)
	}
	if len(body.Items) != 2 {
		t.Errorf("expected 2 items on page 2, got %d", len(body.Items))
	}
}

func TestListFavorites_BadParamsFallBack(t *testing.T) {
	r := favoritesRouter(newFakeFavorites(), "owner-1")

	for _, q := range []string{"?page=abc", "?page=-1", "?limit=0", "?limit=9999"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/favorites"+q, nil))
		if w.Code != http.StatusOK {
			t.Errorf("query %q: expected 200, got %d", q, w.Code)
		}
	}
}

func TestListFavorites_Unavailable(t *testing.T) {
	favorites := newFakeFavorites()
	favorites.unavailable = true
	r := favoritesRouter(favorites, "owner-1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/favorites", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	if code := decodeError(t, w); code != "db_unavailable" {
		t.Errorf("expected db_unavailable, got %q", code)
	}
}

// ----------------------------------------------------------------------------
// Create / Delete
// ----------------------------------------------------------------------------

func TestCreateFavorite_RequiresTitle(t *testing.T) {
	r := favoritesRouter(newFakeFavorites(), "owner-1")

	w := postJSON(r, "/api/favorites", `{"description":"no title"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if code := decodeError(t, w); code != "invalid_payload" {
		t.Errorf("expected invalid_payload, got %q", code)
	}
}

func TestDeleteFavorite_Lifecycle(t *testing.T) {
	favorites := newFakeFavorites()
	r := favoritesRouter(favorites, "owner-1")

	w := postJSON(r, "/api/favorites", `{"title":"Alien","tmdbId":348}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", w.Code)
	}
	var created store.Favorite
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}

	del := httptest.NewRequest(http.MethodDelete, "/api/favorites/"+created.ID.Hex(), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, del)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w.Body.String() != `{"ok":true}` {
		t.Errorf("unexpected delete body: %s", w.Body.String())
	}

	// Deleting again is a 404.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/favorites/"+created.ID.Hex(), nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete: expected 404, got %d", w.Code)
	}
}

func TestDeleteFavorite_InvalidID(t *testing.T) {
	r := favoritesRouter(newFakeFavorites(), "owner-1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/favorites/not-a-hex-id", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if code := decodeError(t, w); code != "invalid_id" {
		t.Errorf("expected invalid_id, got %q", code)
	}
}

func TestDeleteFavorite_ScopedToOwner(t *testing.T) {
	favorites := newFakeFavorites()
	owner := favoritesRouter(favorites, "owner-1")
	other := favoritesRouter(favorites, "owner-2")

	w := postJSON(owner, "/api/favorites", `{"title":"Alien"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", w.Code)
	}
	var created store.Favorite
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}

	// Another identity cannot delete it.
	w = httptest.NewRecorder()
	other.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/favorites/"+created.ID.Hex(), nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("cross-owner delete: expected 404, got %d", w.Code)
	}
}
