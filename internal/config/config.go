package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds everything the CLI needs at runtime. Fields are populated
// from defaults, an optional JSON file, the environment and command-line
// overrides, in that order.
type Config struct {
	// APIBaseURL is the root of the backend REST API, without a trailing slash.
	APIBaseURL string `env:"LIBRIS_API_URL" validate:"required,url"`

	// RequestTimeout bounds every single HTTP request to the backend.
	RequestTimeout time.Duration `env:"LIBRIS_REQUEST_TIMEOUT" validate:"min=1ms"`

	// RefreshInterval drives the dashboard auto-refresh and the
	// connectivity probe.
	RefreshInterval time.Duration `env:"LIBRIS_REFRESH_INTERVAL" validate:"min=1s"`

	// SearchDebounce is how long list pages wait after the last keystroke
	// before firing a search request.
	SearchDebounce time.Duration `env:"LIBRIS_SEARCH_DEBOUNCE" validate:"min=0"`

	// PageSize is the number of rows requested per page of list results.
	PageSize int `env:"LIBRIS_PAGE_SIZE" validate:"min=1,max=100"`

	// CachePath is the SQLite DSN (usually just a file path) of the local
	// session cache.
	CachePath string `env:"LIBRIS_CACHE_PATH" validate:"required"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LIBRIS_LOG_LEVEL" validate:"required,loglevel"`
}

// Overrides carries values parsed from command-line flags. Zero fields are
// ignored, anything set here wins over every other source.
type Overrides struct {
	ConfigFile string
	APIBaseURL string
	CachePath  string
	LogLevel   string
}

// LoadDefaults resets the Config to its built-in defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.RefreshInterval = 15 * time.Second
	c.SearchDebounce = 300 * time.Millisecond
	c.PageSize = 20
	c.CachePath = "libris.db"
	c.LogLevel = "info"
}

// Load builds the runtime configuration by applying defaults, the optional
// JSON file, environment variables and finally the given overrides. The
// result is validated before it is returned.
func Load(ov Overrides) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	path := ov.ConfigFile
	if path == "" {
		// LIBRIS_CONFIG selects the JSON file when no flag was given.
		// godotenv has not run yet, so only the real environment counts here.
		path = envConfigFile()
	}
	if path != "" {
		if err := parseJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	if err := parseEnv(cfg); err != nil {
		return nil, err
	}

	applyOverrides(cfg, ov)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseEnv overlays cfg with values taken from a .env file (if present) and
// the process environment. Only keys that are actually set override anything.
func parseEnv(cfg *Config) error {
	// A missing .env file is fine, real environment variables still apply.
	_ = godotenv.Load()

	overlay := &Config{}
	if err := env.Parse(overlay); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}

	if overlay.APIBaseURL != "" {
		cfg.APIBaseURL = overlay.APIBaseURL
	}
	if overlay.RequestTimeout != 0 {
		cfg.RequestTimeout = overlay.RequestTimeout
	}
	if overlay.RefreshInterval != 0 {
		cfg.RefreshInterval = overlay.RefreshInterval
	}
	if overlay.SearchDebounce != 0 {
		cfg.SearchDebounce = overlay.SearchDebounce
	}
	if overlay.PageSize != 0 {
		cfg.PageSize = overlay.PageSize
	}
	if overlay.CachePath != "" {
		cfg.CachePath = overlay.CachePath
	}
	if overlay.LogLevel != "" {
		cfg.LogLevel = overlay.LogLevel
	}
	return nil
}

func applyOverrides(cfg *Config, ov Overrides) {
	if ov.APIBaseURL != "" {
		cfg.APIBaseURL = ov.APIBaseURL
	}
	if ov.CachePath != "" {
		cfg.CachePath = ov.CachePath
	}
	if ov.LogLevel != "" {
		cfg.LogLevel = ov.LogLevel
	}
}

func validateLogLevel(fl validator.FieldLevel) bool {
	switch strings.ToLower(fl.Field().String()) {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

func validate(cfg *Config) error {
	v := validator.New()
	if err := v.RegisterValidation("loglevel", validateLogLevel); err != nil {
		return fmt.Errorf("failed to register log level validator: %w", err)
	}
	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
