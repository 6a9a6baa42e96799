// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultQuadrantThreshold mirrors competency.DefaultQuadrantThreshold so the
// config package stays free of domain imports.
const DefaultQuadrantThreshold = 2.5

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Storage
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	SQLitePath  string `json:"sqlite_path,omitempty"`  // Embedded database file used when no database_url is set

	// Reporting
	MinResponsesForAnonymity int     `json:"min_responses_for_anonymity,omitempty"` // Fallback when the organization has none
	QuadrantThreshold        float64 `json:"quadrant_threshold,omitempty"`          // Skill/agency level counted as high
	ReportBaseURL            string  `json:"report_base_url,omitempty"`             // Prefix for share links

	// Logging
	LogDir   string `json:"log_dir,omitempty"`   // Directory for rotated log files; stderr only when empty
	LogLevel string `json:"log_level,omitempty"` // debug, info, warn, error
	Verbose  bool   `json:"verbose,omitempty"`   // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.MinResponsesForAnonymity < 0 {
		return fmt.Errorf("config error: 'min_responses_for_anonymity' must be non-negative")
	}
	if c.QuadrantThreshold < 0 || c.QuadrantThreshold > 5 {
		return fmt.Errorf("config error: 'quadrant_threshold' must be between 0 and 5")
	}

	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config error: unknown log_level %q", c.LogLevel)
	}

	if c.LogDir != "" {
		if info, err := os.Stat(c.LogDir); err == nil && !info.IsDir() {
			return fmt.Errorf("config error: log_dir is not a directory: %s", c.LogDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.SQLitePath == "" {
		result.SQLitePath = defaults.SQLitePath
	}
	if result.ReportBaseURL == "" {
		result.ReportBaseURL = defaults.ReportBaseURL
	}
	if result.LogDir == "" {
		result.LogDir = defaults.LogDir
	}
	if result.LogLevel == "" {
		if defaults.LogLevel != "" {
			result.LogLevel = defaults.LogLevel
		} else {
			result.LogLevel = "info"
		}
	}

	// Int fields: use default if zero
	if result.MinResponsesForAnonymity == 0 {
		result.MinResponsesForAnonymity = defaults.MinResponsesForAnonymity
	}

	// Float fields
	if result.QuadrantThreshold == 0 {
		if defaults.QuadrantThreshold > 0 {
			result.QuadrantThreshold = defaults.QuadrantThreshold
		} else {
			result.QuadrantThreshold = DefaultQuadrantThreshold
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
