package observability

import (
	"fmt"
	"time"
)

// Config configures OpenTelemetry export. Telemetry is off unless an OTLP
// endpoint is set.
type Config struct {
	// Endpoint is the OTLP HTTP endpoint host:port (e.g. "localhost:4318").
	// Empty disables tracing and metrics entirely.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`

	// Insecure allows plain-HTTP export (for development collectors).
	Insecure bool `yaml:"insecure" mapstructure:"insecure"`

	// SampleRate is the trace sampling rate in [0, 1].
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`

	// MetricInterval is the metric export interval.
	MetricInterval time.Duration `yaml:"metric_interval" mapstructure:"metric_interval"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.MetricInterval <= 0 {
		c.MetricInterval = 15 * time.Second
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("observability.sample_rate must be in [0, 1] (got: %v)", c.SampleRate)
	}
	return nil
}

// Enabled reports whether telemetry export is configured.
func (c *Config) Enabled() bool { return c.Endpoint != "" }
