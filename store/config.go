package store

import (
	"fmt"
	"time"
)

// Config holds document-store configuration.
type Config struct {
	// URI is the MongoDB connection string. When empty the service starts
	// without a store and store-backed routes answer db_unavailable.
	URI string `yaml:"uri" mapstructure:"uri"`

	// Database is the database name.
	Database string `yaml:"database" mapstructure:"database"`

	// ConnectTimeout bounds the initial ping.
	ConnectTimeout time.Duration `yaml:"connect_timeout" mapstructure:"connect_timeout"`

	// OpTimeout bounds each individual store operation.
	OpTimeout time.Duration `yaml:"op_timeout" mapstructure:"op_timeout"`
}

// ApplyDefaults sets sensible default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Database == "" {
		c.Database = "cinevault"
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = 10 * time.Second
	}
	if c.OpTimeout == 0 {
		c.OpTimeout = 5 * time.Second
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.ConnectTimeout < 0 {
		return fmt.Errorf("store.connect_timeout must be non-negative (got: %v)", c.ConnectTimeout)
	}
	if c.OpTimeout < 0 {
		return fmt.Errorf("store.op_timeout must be non-negative (got: %v)", c.OpTimeout)
	}
	return nil
}
