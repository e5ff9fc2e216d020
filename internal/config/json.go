package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/libris/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "300ms" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	APIBaseURL      string         `json:"api_base_url"`
	RequestTimeout  timex.Duration `json:"request_timeout"`
	RefreshInterval timex.Duration `json:"refresh_interval"`
	SearchDebounce  timex.Duration `json:"search_debounce"`
	PageSize        int            `json:"page_size"`
	CachePath       string         `json:"cache_path"`
	LogLevel        string         `json:"log_level"`
}

// envConfigFile returns the JSON config path named by LIBRIS_CONFIG, or ""
// when the variable is unset.
func envConfigFile() string {
	return os.Getenv("LIBRIS_CONFIG")
}

// parseJSON overlays cfg with values loaded from the JSON file at path.
// Fields absent from the file keep their current values.
func parseJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.RefreshInterval.Duration != 0 {
		cfg.RefreshInterval = time.Duration(jc.RefreshInterval.Duration)
	}
	if jc.SearchDebounce.Duration != 0 {
		cfg.SearchDebounce = time.Duration(jc.SearchDebounce.Duration)
	}
	if jc.PageSize != 0 {
		cfg.PageSize = jc.PageSize
	}
	if jc.CachePath != "" {
		cfg.CachePath = jc.CachePath
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	return nil
}
