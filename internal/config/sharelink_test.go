package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// preserveShareLinkEnv restores the share link variables after a test.
func preserveShareLinkEnv(t *testing.T) {
	t.Helper()
	originalSecret, hadSecret := os.LookupEnv("REPORT_LINK_SECRET")
	originalExpiration, hadExpiration := os.LookupEnv("REPORT_LINK_EXPIRATION_HOURS")
	t.Cleanup(func() {
		if hadSecret {
			os.Setenv("REPORT_LINK_SECRET", originalSecret)
		} else {
			os.Unsetenv("REPORT_LINK_SECRET")
		}
		if hadExpiration {
			os.Setenv("REPORT_LINK_EXPIRATION_HOURS", originalExpiration)
		} else {
			os.Unsetenv("REPORT_LINK_EXPIRATION_HOURS")
		}
	})
}

func TestNewShareLinkConfig_DefaultValues(t *testing.T) {
	preserveShareLinkEnv(t)

	os.Setenv("REPORT_LINK_SECRET", "test-secret-key")
	os.Unsetenv("REPORT_LINK_EXPIRATION_HOURS")

	cfg, err := NewShareLinkConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "test-secret-key", cfg.Secret)
	assert.Equal(t, 168, cfg.ExpirationHours, "should default to one week")
}

func TestNewShareLinkConfig_Expiration(t *testing.T) {
	preserveShareLinkEnv(t)

	tests := []struct {
		name          string
		expiration    string
		expectedHours int
		wantErr       bool
	}{
		{name: "custom expiration 12 hours", expiration: "12", expectedHours: 12},
		{name: "minimum expiration 1 hour", expiration: "1", expectedHours: 1},
		{name: "thirty days", expiration: "720", expectedHours: 720},
		{name: "non-numeric expiration", expiration: "invalid", wantErr: true},
		{name: "zero expiration", expiration: "0", wantErr: true},
		{name: "negative expiration", expiration: "-1", wantErr: true},
		{name: "float expiration", expiration: "12.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv("REPORT_LINK_SECRET", "test-secret-key")
			os.Setenv("REPORT_LINK_EXPIRATION_HOURS", tt.expiration)

			cfg, err := NewShareLinkConfig()
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, cfg)
				assert.Contains(t, err.Error(), "REPORT_LINK_EXPIRATION_HOURS")
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			assert.Equal(t, tt.expectedHours, cfg.ExpirationHours)
		})
	}
}

func TestNewShareLinkConfig_MissingSecret(t *testing.T) {
	preserveShareLinkEnv(t)

	os.Unsetenv("REPORT_LINK_SECRET")

	cfg, err := NewShareLinkConfig()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "REPORT_LINK_SECRET")
}
