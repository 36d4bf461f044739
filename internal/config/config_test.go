package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("APP_PORT", "")
	t.Setenv("AUTH_TOKEN_TTL_HOURS", "")
	t.Setenv("AUTH_BCRYPT_COST", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "3000", cfg.App.Port)
	require.Equal(t, 24, cfg.Auth.TokenTTLHours)
	require.Equal(t, 10, cfg.Auth.BcryptCost)
	require.Equal(t, "gym:auth-events", cfg.Redis.EventsChannel)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:   AppConfig{Env: "development"},
			Auth:  AuthConfig{JWTSecret: "s", TokenTTLHours: 24, BcryptCost: 10},
			Admin: AdminConfig{Password: "admin@123"},
		}
	}
	require.NoError(t, valid().Validate())

	cfg := valid()
	cfg.Auth.JWTSecret = ""
	require.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Auth.TokenTTLHours = 0
	require.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Auth.BcryptCost = 2
	require.Error(t, cfg.Validate())

	cfg = valid()
	cfg.App.Env = "production"
	require.ErrorContains(t, cfg.Validate(), "ADMIN_DEFAULT_PASSWORD")
	cfg.Admin.Password = "a-strong-one"
	require.NoError(t, cfg.Validate())
}

func TestValidate_ProductionRejectsDevSecret(t *testing.T) {
	cfg := &Config{
		App:   AppConfig{Env: "production"},
		Auth:  AuthConfig{JWTSecret: devJWTSecret, TokenTTLHours: 24, BcryptCost: 10},
		Admin: AdminConfig{Password: "a-strong-one"},
	}
	require.ErrorContains(t, cfg.Validate(), "AUTH_JWT_SECRET")

	cfg.App.Env = "development"
	require.NoError(t, cfg.Validate())
}

func TestLoad_ProductionWithoutSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("ADMIN_DEFAULT_PASSWORD", "a-strong-one")

	_, err := Load()
	require.ErrorContains(t, err, "AUTH_JWT_SECRET")
}
