// Package config loads and validates the service configuration from a YAML
// file, a .env file, and environment variables, in increasing precedence.
package config

import (
	"fmt"

	"github.com/cinevault/cinevault/auth"
	"github.com/cinevault/cinevault/logger"
	"github.com/cinevault/cinevault/observability"
	"github.com/cinevault/cinevault/server"
	"github.com/cinevault/cinevault/store"
	"github.com/cinevault/cinevault/tmdb"
)

// ServiceName is the canonical service name used in logs and telemetry.
const ServiceName = "cinevault"

// Config is the full service configuration.
type Config struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment"`
	Version     string `yaml:"version" mapstructure:"version"`

	Logging       logger.Config        `yaml:"logging" mapstructure:"logging"`
	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Auth          auth.Config          `yaml:"auth" mapstructure:"auth"`
	Store         store.Config         `yaml:"store" mapstructure:"store"`
	TMDB          tmdb.Config          `yaml:"tmdb" mapstructure:"tmdb"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills every section with sensible defaults. In development,
// a missing signing secret falls back to a well-known insecure value so the
// service can run locally; Validate rejects that everywhere else.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = ServiceName
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Version == "" {
		c.Version = "0.0.0"
	}
	if c.Auth.Secret == "" && c.Environment == "development" {
		c.Auth.Secret = auth.DevFallbackSecret
	}

	c.Logging.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Auth.ApplyDefaults()
	c.Store.ApplyDefaults()
	c.TMDB.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate checks every section. A production or staging deployment must
// carry an explicit signing secret.
func (c *Config) Validate() error {
	validEnvs := []string{"development", "staging", "production"}
	found := false
	for _, v := range validEnvs {
		if c.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("config.environment must be one of %v (got: %s)", validEnvs, c.Environment)
	}

	if c.Environment != "development" && c.Auth.Secret == auth.DevFallbackSecret {
		return fmt.Errorf("config.auth.secret must be set explicitly outside development")
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("config.server: %w", err)
	}
	if err := c.Auth.Validate(); err != nil {
		return fmt.Errorf("config.auth: %w", err)
	}
	if err := c.Store.Validate(); err != nil {
		return fmt.Errorf("config.store: %w", err)
	}
	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("config.observability: %w", err)
	}
	return nil
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool { return c.Environment == "development" }
