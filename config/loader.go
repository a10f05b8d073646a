package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoaderOption customizes Load.
type LoaderOption func(*loaderOptions)

type loaderOptions struct {
	configFile string
	envFile    string
}

// WithConfigFile sets an explicit config file path instead of searching.
func WithConfigFile(path string) LoaderOption {
	return func(o *loaderOptions) { o.configFile = path }
}

// WithEnvFile sets an explicit .env file path instead of searching.
func WithEnvFile(path string) LoaderOption {
	return func(o *loaderOptions) { o.envFile = path }
}

// Load reads the service configuration. Sources, in increasing precedence:
// config.yml, .env file, process environment. Both files are optional; a
// missing file is skipped silently, an unreadable one is a warning.
func Load(opts ...LoaderOption) (*Config, error) {
	var o loaderOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.configFile == "" {
		o.configFile = findFirst(
			"./cmd/cinevault/config.yml",
			"../cmd/cinevault/config.yml",
			"./config.yml",
		)
	}
	if o.envFile == "" {
		o.envFile = findFirst(
			"./cmd/cinevault/.env",
			".env",
		)
	}

	v := viper.New()

	if o.configFile != "" {
		v.SetConfigFile(o.configFile)
		if err := v.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "[config] warning: failed to read %s: %v\n", o.configFile, err)
		}
	}

	// .env values land in the process environment, then env binding below
	// lets them override the file.
	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil {
			fmt.Fprintf(os.Stderr, "[config] warning: failed to load %s: %v\n", o.envFile, err)
		}
	}

	v.AutomaticEnv()
	bindEnvVars(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findFirst returns the first path that exists, or "".
func findFirst(paths ...string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envBindings maps environment variables onto nested config keys. Viper's
// AutomaticEnv cannot see into nested structs on its own, so the keys the
// service actually documents are bound explicitly.
var envBindings = map[string]string{
	"ENVIRONMENT":       "environment",
	"PORT":              "server.port",
	"HOST":              "server.host",
	"LOG_LEVEL":         "logging.level",
	"LOG_FORMAT":        "logging.format",
	"JWT_SECRET":        "auth.secret",
	"MONGO_URI":         "store.uri",
	"MONGO_DB":          "store.database",
	"TMDB_API_KEY":      "tmdb.api_key",
	"TMDB_LANGUAGE":     "tmdb.language",
	"OTLP_ENDPOINT":     "observability.endpoint",
	"OTLP_INSECURE":     "observability.insecure",
	"TRACE_SAMPLE_RATE": "observability.sample_rate",
}

func bindEnvVars(v *viper.Viper) {
	for env, key := range envBindings {
		if value, ok := os.LookupEnv(env); ok && strings.TrimSpace(value) != "" {
			v.Set(key, value)
		}
	}
}
