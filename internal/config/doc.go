// Package config loads runtime configuration for the libris CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJSON) selected via --config or LIBRIS_CONFIG.
//  3. A .env file in the working directory, if present.
//  4. Environment variables (LIBRIS_* keys, see the struct tags on Config).
//  5. Command-line overrides passed in by the caller, which win over everything.
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "300ms" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://127.0.0.1:8080",
//	  "request_timeout": "10s",
//	  "refresh_interval": "15s",
//	  "search_debounce": "300ms",
//	  "page_size": 20,
//	  "cache_path": "libris.db",
//	  "log_level": "info"
//	}
//
// Primary API
//
//   - type Config                — the validated runtime configuration
//   - type Overrides             — values supplied on the command line
//   - func Load(ov Overrides)    — builds Config by applying all sources in order
//
// Load validates the final result and refuses to return a half-usable Config.
package config
