package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repoConfigDir(t *testing.T) string {
	t.Helper()

	projectRoot, err := filepath.Abs("../../")
	require.NoError(t, err, "failed to get project root")

	return filepath.Join(projectRoot, "etc") + string(filepath.Separator)
}

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(repoConfigDir(t))
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Title)
	assert.NotEmpty(t, cfg.Auth.Issuer)
	assert.NotEmpty(t, cfg.Auth.ClientID)
	assert.NotEmpty(t, cfg.Auth.RedirectURL)
	assert.Equal(t, []string{"openid", "profile", "email"}, cfg.Auth.Scopes)
	assert.NotEmpty(t, cfg.Storage.Path)
	assert.NotEmpty(t, cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)

	// the shipped rule table must be non-empty and well formed
	require.NotEmpty(t, cfg.Policy.Rules)
	for _, r := range cfg.Policy.Rules {
		assert.Contains(t, cfg.Policy.Resources, r.Resource)
		assert.Contains(t, cfg.Policy.Actions, r.Action)
	}
}

func TestReadConfigEnvOverride(t *testing.T) {
	t.Setenv("IORECYCLING_AUTH_CLIENTID", "env-client")

	cfg, err := ReadConfig(repoConfigDir(t))
	require.NoError(t, err)
	assert.Equal(t, "env-client", cfg.Auth.ClientID)
}

func TestReadConfigMissingDir(t *testing.T) {
	_, err := ReadConfig(t.TempDir() + string(filepath.Separator))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid, err := ReadConfig(repoConfigDir(t))
	require.NoError(t, err)

	t.Run("issuer must be a url", func(t *testing.T) {
		c := valid
		c.Auth.Issuer = "not a url"
		assert.Error(t, validate(c))
	})

	t.Run("scopes must not be empty", func(t *testing.T) {
		c := valid
		c.Auth.Scopes = nil
		assert.ErrorIs(t, validate(c), ErrScopesEmpty)
	})

	t.Run("dev fallback needs dev mode", func(t *testing.T) {
		c := valid
		c.Auth.DevFallback = true
		c.DevMode = false
		assert.ErrorIs(t, validate(c), ErrDevFallbackOutsideDevMode)
	})

	t.Run("dev fallback allowed in dev mode", func(t *testing.T) {
		c := valid
		c.Auth.DevFallback = true
		c.DevMode = true
		assert.NoError(t, validate(c))
	})
}
