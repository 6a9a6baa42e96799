package config

import (
	"fmt"
	"os"
	"strconv"
)

// ShareLinkConfig holds configuration for signing report share links.
type ShareLinkConfig struct {
	Secret          string
	ExpirationHours int
}

// NewShareLinkConfig creates a share link configuration from environment variables.
// It reads REPORT_LINK_SECRET (required) and REPORT_LINK_EXPIRATION_HOURS (default: 168).
func NewShareLinkConfig() (*ShareLinkConfig, error) {
	secret := os.Getenv("REPORT_LINK_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("REPORT_LINK_SECRET is required but not set")
	}

	expirationStr := os.Getenv("REPORT_LINK_EXPIRATION_HOURS")
	if expirationStr == "" {
		expirationStr = "168" // one week
	}

	expirationHours, err := strconv.Atoi(expirationStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_LINK_EXPIRATION_HOURS: %v", err)
	}

	config := &ShareLinkConfig{
		Secret:          secret,
		ExpirationHours: expirationHours,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *ShareLinkConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("REPORT_LINK_SECRET cannot be empty")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("REPORT_LINK_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
