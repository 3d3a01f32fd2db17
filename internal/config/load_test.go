package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("CRM_AUTH_JWT_SECRET", testSecret)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "app", cfg.Mongo.Database)
	assert.Equal(t, "redis://localhost:6379", cfg.Redis.URL)
	assert.Equal(t, 7*24*60, cfg.Auth.TokenLifetimeMinutes)
	assert.Equal(t, 5, cfg.Reminder.SweepIntervalMinutes)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("CRM_AUTH_JWT_SECRET", testSecret)
	t.Setenv("CRM_SERVER_PORT", "8080")
	t.Setenv("CRM_SERVER_LOG_LEVEL", "debug")
	t.Setenv("CRM_MONGO_DATABASE", "crm_test")
	t.Setenv("CRM_REMINDER_SWEEP_INTERVAL_MINUTES", "1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "crm_test", cfg.Mongo.Database)
	assert.Equal(t, 1, cfg.Reminder.SweepIntervalMinutes)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("CRM_AUTH_JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsShortJWTSecret(t *testing.T) {
	t.Setenv("CRM_AUTH_JWT_SECRET", "too-short")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	t.Setenv("CRM_AUTH_JWT_SECRET", testSecret)
	t.Setenv("CRM_SERVER_LOG_LEVEL", "verbose")

	_, err := Load()
	assert.Error(t, err)
}
