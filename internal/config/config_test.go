package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"database_url": "postgres://localhost:5432/feedback",
		"min_responses_for_anonymity": 5,
		"quadrant_threshold": 3.0,
		"log_level": "debug",
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "postgres://localhost:5432/feedback", cfg.DatabaseURL)
	assert.Equal(t, 5, cfg.MinResponsesForAnonymity)
	assert.Equal(t, 3.0, cfg.QuadrantThreshold)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	notADir := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(notADir, []byte("x"), 0644))

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "empty config", cfg: Config{}},
		{name: "valid config", cfg: Config{MinResponsesForAnonymity: 3, QuadrantThreshold: 2.5, LogLevel: "warn", LogDir: t.TempDir()}},
		{name: "missing log dir is created later", cfg: Config{LogDir: filepath.Join(t.TempDir(), "logs")}},
		{name: "negative threshold", cfg: Config{MinResponsesForAnonymity: -1}, wantErr: "min_responses_for_anonymity"},
		{name: "quadrant above scale", cfg: Config{QuadrantThreshold: 5.5}, wantErr: "quadrant_threshold"},
		{name: "negative quadrant", cfg: Config{QuadrantThreshold: -1}, wantErr: "quadrant_threshold"},
		{name: "unknown log level", cfg: Config{LogLevel: "trace"}, wantErr: "log_level"},
		{name: "log dir is a file", cfg: Config{LogDir: notADir}, wantErr: "log_dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{
		DatabaseURL: "postgres://override",
	}

	defaults := Config{
		DatabaseURL:              "postgres://default",
		SQLitePath:               "feedback.db",
		MinResponsesForAnonymity: 4,
		QuadrantThreshold:        3.0,
		LogLevel:                 "warn",
	}

	result := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "postgres://override", result.DatabaseURL) // Not overwritten
	assert.Equal(t, "feedback.db", result.SQLitePath)          // From defaults
	assert.Equal(t, 4, result.MinResponsesForAnonymity)        // From defaults
	assert.Equal(t, 3.0, result.QuadrantThreshold)             // From defaults
	assert.Equal(t, "warn", result.LogLevel)                   // From defaults
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := &Config{}
	result := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, DefaultQuadrantThreshold, result.QuadrantThreshold)
	assert.Equal(t, "info", result.LogLevel)
	assert.Equal(t, 0, result.MinResponsesForAnonymity)
}
