package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_MODE", "dev")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsDev())
	assert.False(t, cfg.IsProd())
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "cooploan", cfg.Database.DBName)
	assert.Equal(t, 15, cfg.JWT.AccessTokenMins)
	assert.Equal(t, 7, cfg.JWT.RefreshTokenDays)
	assert.Equal(t, "admin@cooploan.com", cfg.Admin.Email)
}

func TestLoadRejectsInvalidMode(t *testing.T) {
	t.Setenv("APP_MODE", "staging")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadTrimsMode(t *testing.T) {
	t.Setenv("APP_MODE", " prod ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProd())
}

func TestModePrefixedDatabaseConfig(t *testing.T) {
	t.Setenv("APP_MODE", "prod")
	t.Setenv("PROD_DB_HOST", "db.internal")
	t.Setenv("PROD_DB_NAME", "cooploan_prod")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "cooploan_prod", cfg.Database.DBName)
}

func TestGetAllowedOrigins(t *testing.T) {
	t.Run("dev defaults to wildcard", func(t *testing.T) {
		t.Setenv("APP_MODE", "dev")
		t.Setenv("ALLOWED_ORIGINS", "")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "*", cfg.GetAllowedOrigins())
	})

	t.Run("explicit origins win", func(t *testing.T) {
		t.Setenv("APP_MODE", "prod")
		t.Setenv("ALLOWED_ORIGINS", "https://coop.example.com")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "https://coop.example.com", cfg.GetAllowedOrigins())
	})
}
