package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigFromEnv(t *testing.T) {
	config, err := loadConfig("", env(map[string]string{
		"DATABASE_URL": "postgres://forecast@localhost/forecast",
		"JWTSECRET":    "secret",
		"PORT":         "8080",
		"APP_ENV":      "production",
		"CLIENT_URLS":  "http://localhost:3000, https://forecast.example.com,",
	}))
	require.NoError(t, err)

	assert.Equal(t, "postgres://forecast@localhost/forecast", config.DbURI)
	assert.Equal(t, "secret", config.JWTSecret)
	assert.Equal(t, "0.0.0.0:8080", config.Listen)
	assert.True(t, config.Production())
	assert.Equal(t, []string{"http://localhost:3000", "https://forecast.example.com"}, config.ClientURLs)
	assert.Equal(t, Duration(0), config.TokenTTL)
	assert.Equal(t, Duration(time.Hour), config.ResolutionInterval)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
listen = "127.0.0.1:4000"
client_urls = ["http://localhost:3000"]
db_uri = "postgres://file@localhost/forecast"
jwt_secret = "from-file"
token_ttl = "24h"
resolution_interval = "15m"
`)

	config, err := loadConfig(path, env(nil))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:4000", config.Listen)
	assert.Equal(t, "development", config.Environment)
	assert.False(t, config.Production())
	assert.Equal(t, Duration(24*time.Hour), config.TokenTTL)
	assert.Equal(t, Duration(15*time.Minute), config.ResolutionInterval)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
db_uri = "postgres://file@localhost/forecast"
jwt_secret = "from-file"
`)

	config, err := loadConfig(path, env(map[string]string{"JWTSECRET": "from-env"}))
	require.NoError(t, err)
	assert.Equal(t, "from-env", config.JWTSecret)
	assert.Equal(t, "postgres://file@localhost/forecast", config.DbURI)
}

func TestLoadConfigRequiresSecrets(t *testing.T) {
	_, err := loadConfig("", env(nil))
	require.Error(t, err)
	assert.ErrorContains(t, err, "db_uri")
	assert.ErrorContains(t, err, "jwt_secret")
}

func TestLoadConfigRejectsBadDurations(t *testing.T) {
	path := writeConfig(t, `
db_uri = "postgres://file@localhost/forecast"
jwt_secret = "from-file"
token_ttl = "-1h"
`)
	_, err := loadConfig(path, env(nil))
	assert.ErrorContains(t, err, "token_ttl")

	path = writeConfig(t, `token_ttl = "tomorrow"`)
	_, err = loadConfig(path, env(nil))
	assert.ErrorContains(t, err, "failed to decode config file")
}

func TestLoadConfigUnknownField(t *testing.T) {
	path := writeConfig(t, `images_path = "./images"`)
	_, err := loadConfig(path, env(nil))
	assert.ErrorContains(t, err, "failed to decode config file")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"), env(nil))
	assert.ErrorContains(t, err, "failed to open config file")
}
