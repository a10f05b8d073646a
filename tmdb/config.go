package tmdb

import "time"

const (
	defaultBaseURL  = "https://api.themoviedb.org/3"
	defaultLanguage = "en-US"
	defaultTimeout  = 15 * time.Second
)

// Config configures the TMDB catalog client.
type Config struct {
	// APIKey is the TMDB API key. Empty means the catalog is not
	// configured; search requests fail before any outbound call.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`

	// Language is the locale passed to TMDB. Defaults to en-US.
	Language string `yaml:"language" mapstructure:"language"`

	// BaseURL is the TMDB API base URL. Overridable for tests.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout is the per-request timeout for upstream calls.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Language == "" {
		c.Language = defaultLanguage
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}
