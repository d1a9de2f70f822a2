package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

var allKeys = []string{
	"PORT", "DATABASE_URL", "JWT_SECRET", "ACCESS_TOKEN_EXPIRE_MINUTES", "BCRYPT_COST", "APP_ENV",
	"LOG_LEVEL", "CORS_ALLOWED_ORIGINS", "CORS_ALLOWED_METHODS", "CORS_ALLOWED_HEADERS", "CORS_ALLOW_CREDENTIALS",
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, allKeys...)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.ServerPort)
	assert.Equal(t, "sqlite:///./cortexai_dev.db", cfg.DatabaseURL)
	assert.Equal(t, DefaultJWTSecret, cfg.JWTSecret)
	assert.Equal(t, time.Hour, cfg.AccessTokenTTL())
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedMethods)
	assert.True(t, cfg.CORS.AllowCredentials)
	assert.False(t, cfg.Production())
}

func TestLoad_FromEnv(t *testing.T) {
	unsetEnv(t, allKeys...)
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://u:p@db/app")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "15")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("CORS_ALLOW_CREDENTIALS", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "postgres://u:p@db/app", cfg.DatabaseURL)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.CORS.AllowCredentials)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"port not a number":      {"PORT": "http"},
		"port out of range":      {"PORT": "70000"},
		"non-positive ttl":       {"ACCESS_TOKEN_EXPIRE_MINUTES": "0"},
		"default secret in prod": {"APP_ENV": "production"},
		"bcrypt cost too high":   {"BCRYPT_COST": "40"},
	}
	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			unsetEnv(t, allKeys...)
			for k, v := range vars {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadService_DefaultPort(t *testing.T) {
	unsetEnv(t, allKeys...)

	cfg, err := LoadService(8001)
	require.NoError(t, err)
	assert.Equal(t, 8001, cfg.ServerPort)

	t.Setenv("PORT", "9001")
	cfg, err = LoadService(8001)
	require.NoError(t, err)
	assert.Equal(t, 9001, cfg.ServerPort)
}

func TestLoad_ProductionSecret(t *testing.T) {
	unsetEnv(t, allKeys...)
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("JWT_SECRET", DefaultJWTSecret)
	_, err = Load()
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "prod-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Production())
	assert.Equal(t, "prod-secret", cfg.JWTSecret)
}
