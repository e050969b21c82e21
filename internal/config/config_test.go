package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.ListenAddr())
	assert.Equal(t, "/docs", cfg.Docs.Mount)
	assert.Equal(t, "/openapi.yaml", cfg.Docs.APIURL)
	assert.Equal(t, "Swagger UI", cfg.Docs.PageTitle)
	assert.False(t, cfg.Docs.CacheTemplates)
	assert.Nil(t, cfg.Docs.Overrides)
	assert.Equal(t, 20.0, cfg.RateLimit.Rate)
	assert.Equal(t, 40, cfg.RateLimit.Burst)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SWAGGERUI_PORT", "9090")
	t.Setenv("SWAGGERUI_MOUNT", "/")
	t.Setenv("SWAGGERUI_URI_PREFIX", "/gateway")
	t.Setenv("SWAGGERUI_CACHE_TEMPLATES", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr())
	assert.Equal(t, "/", cfg.Docs.Mount)
	assert.Equal(t, "/gateway", cfg.Docs.URIPrefix)
	assert.True(t, cfg.Docs.CacheTemplates)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("SWAGGERUI_CACHE_TEMPLATES", "maybe")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swaggerui.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"docExpansion": "full",
		"client_id": "docs-client",
		"supportedSubmitMethods": ["get"]
	}`), 0644))
	t.Setenv("SWAGGERUI_CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "full", cfg.Docs.Overrides["docExpansion"])
	assert.Equal(t, "docs-client", cfg.Docs.Overrides["client_id"])
	assert.Equal(t, []any{"get"}, cfg.Docs.Overrides["supportedSubmitMethods"])
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv("SWAGGERUI_CONFIG_FILE", filepath.Join(t.TempDir(), "nope.json"))
	_, err := Load()
	assert.Error(t, err)
}
