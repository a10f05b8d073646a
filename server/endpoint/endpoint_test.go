package endpoint

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	apperrors "github.com/cinevault/cinevault/errors"
	"github.com/cinevault/cinevault/logger"
	"github.com/cinevault/cinevault/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *logger.Logger {
	return logger.New(&logger.Config{Level: "error", Format: "json"}, "test")
}

// fakeIdentities is an in-memory credential store keyed by normalized email.
type fakeIdentities struct {
	byEmail     map[string]*store.Identity
	passwords   map[string]string
	unavailable bool
}

func newFakeIdentities() *fakeIdentities {
	return &fakeIdentities{
		byEmail:   make(map[string]*store.Identity),
		passwords: make(map[string]string),
	}
}

func (f *fakeIdentities) Register(ctx context.Context, email, password, name string) (*store.Identity, error) {
	if f.unavailable {
		return nil, apperrors.DBUnavailable()
	}
	email = store.NormalizeEmail(email)
	if email == "" {
		return nil, apperrors.InvalidPayload("email is required")
	}
	if len(password) < store.MinPasswordLength {
		return nil, apperrors.InvalidPayload(fmt.Sprintf("password must be at least %d characters", store.MinPasswordLength))
	}
	if _, ok := f.byEmail[email]; ok {
		return nil, apperrors.EmailExists()
	}
	identity := &store.Identity{ID: bson.NewObjectID(), Email: email, Name: name}
	f.byEmail[email] = identity
	f.passwords[email] = password
	return identity, nil
}

func (f *fakeIdentities) FindByEmail(ctx context.Context, email string) (*store.Identity, error) {
	if f.unavailable {
		return nil, apperrors.DBUnavailable()
	}
	identity, ok := f.byEmail[store.NormalizeEmail(email)]
	if !ok {
		return nil, apperrors.NotFound("identity")
	}
	return identity, nil
}

func (f *fakeIdentities) VerifyPassword(identity *store.Identity, password string) bool {
	return f.passwords[identity.Email] == password
}

// fakeTokens issues predictable tokens.
type fakeTokens struct {
	fail bool
}

func (f *fakeTokens) Issue(identityID string) (string, error) {
	if f.fail {
		return "", errors.New("signing failed")
	}
	return "token-for-" + identityID, nil
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", w.Body.String(), err)
	}
	return body.Error
}

// ----------------------------------------------------------------------------
// Register
// ----------------------------------------------------------------------------

func authRouter(identities IdentityStore, tokens TokenIssuer) *gin.Engine {
	r := gin.New()
	r.POST("/api/auth/register", Register(identities, tokens, testLogger()))
	r.POST("/api/auth/login", Login(identities, tokens, testLogger()))
	return r
}

func TestRegister_Success(t *testing.T) {
	r := authRouter(newFakeIdentities(), &fakeTokens{})

	w := postJSON(r, "/api/auth/register", `{"email":"u@test.com","password":"secret1","name":"U"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var body TokenResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Token == "" {
		t.Error("expected a token in the response")
	}
}

func TestRegister_ValidationFailures(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{"email":`},
		{"missing email", `{"password":"secret1"}`},
		{"bad email", `{"email":"not-an-email","password":"secret1"}`},
		{"short password", `{"email":"u@test.com","password":"abc"}`},
	}
	for _, tc := range cases {
		r := authRouter(newFakeIdentities(), &fakeTokens{})
		w := postJSON(r, "/api/auth/register", tc.body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tc.name, w.Code)
		}
		if code := decodeError(t, w); code != "invalid_payload" {
			t.Errorf("%s: expected invalid_payload, got %q", tc.name, code)
		}
	}
}

func TestRegister_DuplicateEmailIsCaseInsensitive(t *testing.T) {
	r := authRouter(newFakeIdentities(), &fakeTokens{})

	if w := postJSON(r, "/api/auth/register", `{"email":"A@x.com","password":"secret1"}`); w.Code != http.StatusCreated {
		t.Fatalf("first register: expected 201, got %d", w.Code)
	}
	w := postJSON(r, "/api/auth/register", `{"email":"a@x.com","password":"secret1"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if code := decodeError(t, w); code != "email_exists" {
		t.Errorf("expected email_exists, got %q", code)
	}
}

func TestRegister_StoreUnavailable(t *testing.T) {
	identities := newFakeIdentities()
	identities.unavailable = true
	r := authRouter(identities, &fakeTokens{})

	w := postJSON(r, "/api/auth/register", `{"email":"u@test.com","password":"secret1"}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	if code := decodeError(t, w); code != "db_unavailable" {
		t.Errorf("expected db_unavailable, got %q", code)
	}
}

func TestRegister_TokenIssueFailure(t *testing.T) {
	r := authRouter(newFakeIdentities(), &fakeTokens{fail: true})

	w := postJSON(r, "/api/auth/register", `{"email":"u@test.com","password":"secret1"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if code := decodeError(t, w); code != "auth_error" {
		t.Errorf("expected auth_error, got %q", code)
	}
}

// ----------------------------------------------------------------------------
// Login
// ----------------------------------------------------------------------------

func TestLogin_RoundTrip(t *testing.T) {
	identities := newFakeIdentities()
	r := authRouter(identities, &fakeTokens{})

	if w := postJSON(r, "/api/auth/register", `{"email":"u@test.com","password":"secret1"}`); w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", w.Code)
	}

	w := postJSON(r, "/api/auth/login", `{"email":"u@test.com","password":"secret1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body TokenResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Token == "" {
		t.Error("expected a token in the response")
	}
}

// Wrong password and unknown email must be indistinguishable, so login
// cannot be used to probe which emails exist.
func TestLogin_NoExistenceOracle(t *testing.T) {
	identities := newFakeIdentities()
	r := authRouter(identities, &fakeTokens{})

	if w := postJSON(r, "/api/auth/register", `{"email":"known@x.com","password":"secret1"}`); w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", w.Code)
	}

	wrongPassword := postJSON(r, "/api/auth/login", `{"email":"known@x.com","password":"wrong-1"}`)
	unknownEmail := postJSON(r, "/api/auth/login", `{"email":"ghost@x.com","password":"wrong-1"}`)

	if wrongPassword.Code != http.StatusUnauthorized || unknownEmail.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", wrongPassword.Code, unknownEmail.Code)
	}
	if wrongPassword.Body.String() != unknownEmail.Body.String() {
		t.Errorf("responses differ: %s vs %s", wrongPassword.Body.String(), unknownEmail.Body.String())
	}
	if code := decodeError(t, wrongPassword); code != "invalid_credentials" {
		t.Errorf("expected invalid_credentials, got %q", code)
	}
}
