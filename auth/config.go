package auth

import (
	"errors"
	"time"
)

// DevFallbackSecret is the signing secret used when none is configured in a
// development environment. It is public knowledge and must never reach
// production; config validation rejects an empty secret outside development.
const DevFallbackSecret = "cinevault-insecure-dev-secret"

// Config configures the token service.
type Config struct {
	// Secret is the HMAC signing key shared by issue and verify.
	Secret string `yaml:"secret" mapstructure:"secret"`

	// TokenTTL is the validity window of issued tokens.
	TokenTTL time.Duration `yaml:"token_ttl" mapstructure:"token_ttl"`

	// BcryptCost is the cost factor for password hashing.
	BcryptCost int `yaml:"bcrypt_cost" mapstructure:"bcrypt_cost"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.TokenTTL == 0 {
		c.TokenTTL = 7 * 24 * time.Hour
	}
	if c.BcryptCost == 0 {
		c.BcryptCost = 10
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return errors.New("auth: signing secret is required")
	}
	if c.TokenTTL <= 0 {
		return errors.New("auth: token ttl must be positive")
	}
	return nil
}
