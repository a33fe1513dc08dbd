package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "https://itunes.apple.com", cfg.BaseURL)
	assert.Equal(t, "us", cfg.Country)
	assert.Equal(t, 1, cfg.Pages)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 2, cfg.MaxRetries)
	assert.False(t, cfg.StrictStatus)
	assert.Equal(t, "ignore", cfg.RatingPolicy)
	assert.Empty(t, cfg.Token)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ITUNES_COUNTRY", "jp")
	t.Setenv("ITUNES_PAGES", "4")
	t.Setenv("ITUNES_TIMEOUT", "3s")
	t.Setenv("ITUNES_STRICT_STATUS", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "jp", cfg.Country)
	assert.Equal(t, 4, cfg.Pages)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.True(t, cfg.StrictStatus)
}

func TestLoad_FromDotEnvFile(t *testing.T) {
	// Registered so t.Setenv restores the environment after godotenv sets it.
	t.Setenv("ITUNES_RATING_POLICY", "")
	os.Unsetenv("ITUNES_RATING_POLICY")
	t.Setenv("ITUNES_BASE_URL", "")
	os.Unsetenv("ITUNES_BASE_URL")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ITUNES_RATING_POLICY=clamp\nITUNES_BASE_URL=http://mirror.local\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "clamp", cfg.RatingPolicy)
	assert.Equal(t, "http://mirror.local", cfg.BaseURL)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("ITUNES_PAGES", "0")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "ITUNES_PAGES must be at least 1")

	t.Setenv("ITUNES_PAGES", "many")
	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "parse config")
}
