package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes and verifies passwords with bcrypt. The salt is
// embedded in the bcrypt output, so identical passwords produce distinct
// hashes.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a bcrypt hasher with the given cost factor.
// A cost outside bcrypt's supported range falls back to cost 10.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = 10
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the salted one-way hash of password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if len(password) > 72 {
		return "", errors.New("auth: password exceeds 72 characters (bcrypt limit)")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether password matches the stored hash. The comparison is
// the bcrypt primitive itself, never a raw string equality.
func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
