// Package auth implements the stateless session-token service and password
// hashing. Tokens are self-contained HS256 JWTs carrying the identity id as
// their sole claim; there is no server-side session table, so a token stays
// valid for its full window and cannot be revoked early.
package auth

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Verification failure modes. The HTTP gate collapses all of them into one
// response; the distinction exists for logs and tests.
var (
	// ErrTokenMalformed means the token could not be parsed or decoded.
	ErrTokenMalformed = errors.New("auth: token malformed")
	// ErrTokenSignature means the signature does not match.
	ErrTokenSignature = errors.New("auth: token signature invalid")
	// ErrTokenExpired means the embedded expiry is in the past.
	ErrTokenExpired = errors.New("auth: token expired")
)

// Claims is the token payload: registered claims only, with Subject holding
// the identity id.
type Claims struct {
	gojwt.RegisteredClaims
}

// TokenService issues and verifies bearer tokens.
type TokenService struct {
	cfg Config
	// now is swappable for expiry tests.
	now func() time.Time
}

// NewTokenService creates a token service from config.
func NewTokenService(cfg Config) (*TokenService, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &TokenService{cfg: cfg, now: time.Now}, nil
}

// Issue produces a signed token bound to the given identity id, valid for
// the configured window from now.
func (s *TokenService) Issue(identityID string) (string, error) {
	if identityID == "" {
		return "", errors.New("auth: identity id is required")
	}

	now := s.now()
	claims := &Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   identityID,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
	}

	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string and returns the embedded
// identity id. Signature and expiry are checked; no issuer or audience
// claims are validated.
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := gojwt.ParseWithClaims(tokenString, claims, s.keyFunc,
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", classifyParseError(err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrTokenMalformed
	}
	return claims.Subject, nil
}

// keyFunc rejects tokens whose header names a different algorithm before
// handing out the shared secret.
func (s *TokenService) keyFunc(token *gojwt.Token) (interface{}, error) {
	if token.Method.Alg() != gojwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("auth: unexpected signing method: %s", token.Method.Alg())
	}
	return []byte(s.cfg.Secret), nil
}

// classifyParseError maps golang-jwt sentinel errors onto this package's
// failure modes.
func classifyParseError(err error) error {
	switch {
	case errors.Is(err, gojwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, gojwt.ErrTokenSignatureInvalid):
		return ErrTokenSignature
	default:
		return ErrTokenMalformed
	}
}
