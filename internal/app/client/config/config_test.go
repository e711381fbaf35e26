package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SERVER_ADDRESS", "")
	t.Setenv("CONFIG_DIR", "")
	t.Setenv("TOKEN_PATH", "")
	t.Setenv("REQUEST_TIMEOUT", "")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, defaultServerAddress, cfg.ServerAddress)
	assert.Equal(t, filepath.Join(home, defaultConfigDir), cfg.ConfigDir)
	assert.Equal(t, filepath.Join(home, defaultConfigDir, "session.json"), cfg.TokenPath)
	assert.Equal(t, defaultRequestTimeout, cfg.RequestTimeout)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL())
}

func TestLoad_FromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SERVER_ADDRESS", "tracker.example.com")
	t.Setenv("ENABLE_TLS", "true")
	t.Setenv("CONFIG_DIR", dir)
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("APP_ENV", "local")
	t.Setenv("TOKEN_PATH", "")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "https://tracker.example.com", cfg.BaseURL())
	assert.Equal(t, filepath.Join(dir, "session.json"), cfg.TokenPath)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.IsLocal())
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("CONFIG_DIR", t.TempDir())
	t.Setenv("REQUEST_TIMEOUT", "0s")

	_, err := Load(viper.New())
	assert.Error(t, err)
}
