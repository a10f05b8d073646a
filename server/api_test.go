package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/cinevault/cinevault/auth"
	apperrors "github.com/cinevault/cinevault/errors"
	"github.com/cinevault/cinevault/logger"
	"github.com/cinevault/cinevault/store"
	"github.com/cinevault/cinevault/tmdb"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memIdentities struct {
	byEmail   map[string]*store.Identity
	passwords map[string]string
}

func (m *memIdentities) Register(ctx context.Context, email, password, name string) (*store.Identity, error) {
	email = store.NormalizeEmail(email)
	if _, ok := m.byEmail[email]; ok {
		return nil, apperrors.EmailExists()
	}
	identity := &store.Identity{ID: bson.NewObjectID(), Email: email, Name: name}
	m.byEmail[email] = identity
	m.passwords[email] = password
	return identity, nil
}

func (m *memIdentities) FindByEmail(ctx context.Context, email string) (*store.Identity, error) {
	identity, ok := m.byEmail[store.NormalizeEmail(email)]
	if !ok {
		return nil, apperrors.NotFound("identity")
	}
	return identity, nil
}

func (m *memIdentities) VerifyPassword(identity *store.Identity, password string) bool {
	return m.passwords[identity.Email] == password
}

type memFavorites struct {
	items map[string][]store.Favorite
}

func (m *memFavorites) List(ctx context.Context, ownerID string, page, limit int) ([]store.Favorite, int64, error) {
	all := m.items[ownerID]
	out := make([]store.Favorite, 0, len(all))
	out = append(out, all...)
	return out, int64(len(all)), nil
}

func (m *memFavorites) Create(ctx context.Context, ownerID string, input store.FavoriteInput) (*store.Favorite, error) {
	fav := store.Favorite{ID: bson.NewObjectID(), OwnerID: ownerID, Title: input.Title}
	m.items[ownerID] = append(m.items[ownerID], fav)
	return &fav, nil
}

func (m *memFavorites) Delete(ctx context.Context, ownerID, id string) error {
	return apperrors.NotFound("favorite")
}

type memCatalog struct{}

func (memCatalog) Search(ctx context.Context, query string, page int) (*tmdb.Page, error) {
	return &tmdb.Page{Items: []tmdb.Film{}, Page: page, TotalPages: 0, Total: 0}, nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	log := logger.New(&logger.Config{Level: "error", Format: "json"}, "test")
	tokens, err := auth.NewTokenService(auth.Config{Secret: "test-secret"})
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	cfg := Config{}
	cfg.ApplyDefaults()
	srv := New(cfg, log)
	srv.ApplyMiddleware()
	srv.RegisterRoutes(Deps{
		Identities: &memIdentities{byEmail: map[string]*store.Identity{}, passwords: map[string]string{}},
		Favorites:  &memFavorites{items: map[string][]store.Favorite{}},
		Catalog:    memCatalog{},
		Tokens:     tokens,
		Log:        log,
	})
	return srv
}

// ----------------------------------------------------------------------------
// End-to-end request flow
// ----------------------------------------------------------------------------

// Register, use the issued token on a protected route, then hit the same
// route without a token.
func TestAPI_RegisterThenFavoritesThenUnauthorized(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"email":"u@test.com","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.GinEngine().ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var tokenBody struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &tokenBody); err != nil {
		t.Fatalf("decode token: %v", err)
	}
	if tokenBody.Token == "" {
		t.Fatal("expected a token")
	}

	// With the token: 200 and an empty items array.
	req = httptest.NewRequest(http.MethodGet, "/api/favorites", nil)
	req.Header.Set("Authorization", "Bearer "+tokenBody.Token)
	w = httptest.NewRecorder()
	srv.GinEngine().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("favorites: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"items":[]`) {
		t.Errorf("expected empty items array, got %s", w.Body.String())
	}

	// Without the header: the uniform 401.
	w = httptest.NewRecorder()
	srv.GinEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/favorites", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if w.Body.String() != `{"error":"unauthorized"}` {
		t.Errorf("unexpected 401 body: %s", w.Body.String())
	}
}

func TestAPI_HealthIsOpen(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.GinEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != `{"ok":true}` {
		t.Errorf("unexpected health body: %s", w.Body.String())
	}
}

func TestAPI_FilmsRequiresToken(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.GinEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/films?q=alien", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
