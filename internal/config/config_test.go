package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManagerDefaults(t *testing.T) {
	manager, err := NewManager()
	require.NoError(t, err)

	cfg := manager.GetConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 50.0, cfg.RateLimit.RequestsPerSecond)
}

func TestManagerValidate(t *testing.T) {
	manager, err := NewManager()
	require.NoError(t, err)

	assert.NoError(t, manager.Validate())
}

func TestManagerValidateRejectsBadPort(t *testing.T) {
	manager, err := NewManager()
	require.NoError(t, err)

	manager.config.Server.Port = -1
	assert.Error(t, manager.Validate())
}

func TestManagerValidateRejectsBadLogLevel(t *testing.T) {
	manager, err := NewManager()
	require.NoError(t, err)

	manager.config.Logging.Level = "verbose"
	assert.Error(t, manager.Validate())
}

func TestManagerValidateRejectsBadRateLimit(t *testing.T) {
	manager, err := NewManager()
	require.NoError(t, err)

	manager.config.RateLimit.Enabled = true
	manager.config.RateLimit.RequestsPerSecond = 0
	assert.Error(t, manager.Validate())
}

func TestEnvironmentAccessors(t *testing.T) {
	manager, err := NewManager()
	require.NoError(t, err)

	// No environment set: development by default.
	assert.True(t, manager.IsDevelopment())
	assert.False(t, manager.IsProduction())
}
