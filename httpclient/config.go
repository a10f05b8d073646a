package httpclient

import (
	"fmt"
	"time"
)

const defaultTimeout = 15 * time.Second

// Config configures the HTTP client.
type Config struct {
	// BaseURL is the base URL prepended to all request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout is the per-request timeout. Defaults to 15s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Query are default query parameters applied to all requests
	// (e.g. an API key).
	Query map[string]string `yaml:"query" mapstructure:"query"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	return nil
}
