package swaggerui

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CaioWing/swaggerui/internal/domain"
)

func decodeConfig(t *testing.T, page PageContext) map[string]any {
	t.Helper()
	var cfg map[string]any
	require.NoError(t, json.Unmarshal([]byte(page.ConfigJSON), &cfg))
	return cfg
}

func TestDefaultConfig_IsFreshEachCall(t *testing.T) {
	a := DefaultConfig()
	a["docExpansion"] = "full"
	delete(a, KeyClientID)

	b := DefaultConfig()
	assert.Equal(t, "none", b["docExpansion"])
	assert.Equal(t, "null", b[KeyClientID])
}

func TestBuildPageContext_BaseURL(t *testing.T) {
	tests := []struct {
		mount  string
		prefix string
		want   string
	}{
		{"/docs", "", "/docs"},
		{"/docs", "/api", "/api/docs"},
		{"/docs/", "/api", "/api/docs/"},
		{"/", "/api", "/api"},
		{"/", "", ""},
	}

	for _, tt := range tests {
		page, err := BuildPageContext(tt.mount, "/openapi.yaml", WithURIPrefix(tt.prefix))
		require.NoError(t, err)
		assert.Equal(t, tt.want, page.BaseURL, "mount=%q prefix=%q", tt.mount, tt.prefix)
	}
}

func TestBuildPageContext_Defaults(t *testing.T) {
	page, err := BuildPageContext("/docs", "/openapi.yaml")
	require.NoError(t, err)

	assert.Equal(t, "Swagger UI", page.PageTitle)
	assert.Empty(t, page.FaviconURL)
	assert.Equal(t, "/openapi.yaml", page.APIURL)
	assert.Equal(t, "null", page.AppName)
	assert.Equal(t, "null", page.ClientRealm)
	assert.Equal(t, "null", page.ClientID)
	assert.Equal(t, "null", page.ClientSecret)

	assert.Equal(t, map[string]any{
		"docExpansion":           "none",
		"jsonEditor":             false,
		"defaultModelRendering":  "schema",
		"showRequestHeaders":     false,
		"supportedSubmitMethods": []any{"get", "post", "put", "delete", "patch"},
	}, decodeConfig(t, page))
}

func TestBuildPageContext_OverrideOneKey(t *testing.T) {
	page, err := BuildPageContext("/docs", "/openapi.yaml",
		WithConfig(map[string]any{"docExpansion": "full"}))
	require.NoError(t, err)

	cfg := decodeConfig(t, page)
	assert.Equal(t, "full", cfg["docExpansion"])
	assert.Equal(t, false, cfg["jsonEditor"])
	assert.Equal(t, "schema", cfg["defaultModelRendering"])
	assert.Len(t, cfg, 5)
}

func TestBuildPageContext_IdentityFieldsLeaveJSON(t *testing.T) {
	overrides := map[string]any{
		KeyClientID:     "docs-client",
		KeyClientSecret: "s3cret",
		KeyClientRealm:  "internal",
		KeyAppName:      "Inventory",
		"deepLinking":   true,
	}

	page, err := BuildPageContext("/docs", "/openapi.yaml",
		WithConfig(overrides),
		WithPageTitle("Inventory API"),
		WithFaviconURL("/favicon.ico"),
	)
	require.NoError(t, err)

	assert.Equal(t, "Inventory API", page.PageTitle)
	assert.Equal(t, "/favicon.ico", page.FaviconURL)
	assert.Equal(t, "docs-client", page.ClientID)
	assert.Equal(t, "s3cret", page.ClientSecret)
	assert.Equal(t, "internal", page.ClientRealm)
	assert.Equal(t, "Inventory", page.AppName)

	cfg := decodeConfig(t, page)
	for _, key := range []string{KeyClientID, KeyClientSecret, KeyClientRealm, KeyAppName} {
		assert.NotContains(t, cfg, key)
	}
	assert.Equal(t, true, cfg["deepLinking"])

	// the caller's map is left alone
	assert.Len(t, overrides, 5)
	assert.Equal(t, "docs-client", overrides[KeyClientID])
}

func TestBuildPageContext_NilIdentityIsUnset(t *testing.T) {
	page, err := BuildPageContext("/docs", "/openapi.yaml",
		WithConfig(map[string]any{KeyClientID: nil}))
	require.NoError(t, err)
	assert.Equal(t, "null", page.ClientID)
}

func TestBuildPageContext_NonStringIdentity(t *testing.T) {
	_, err := BuildPageContext("/docs", "/openapi.yaml",
		WithConfig(map[string]any{KeyClientID: 42}))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "client_id")
}

func TestBuildPageContext_Unencodable(t *testing.T) {
	_, err := BuildPageContext("/docs", "/openapi.yaml",
		WithConfig(map[string]any{"onComplete": func() {}}))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuildPageContext_InvalidInput(t *testing.T) {
	for _, mount := range []string{"", "docs", "/docs/*", "/docs/{id}"} {
		_, err := BuildPageContext(mount, "/openapi.yaml")
		assert.ErrorIs(t, err, domain.ErrInvalidInput, mount)
	}

	_, err := BuildPageContext("/docs", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuildPageContext_JSONIsScriptSafe(t *testing.T) {
	page, err := BuildPageContext("/docs", "/openapi.yaml",
		WithConfig(map[string]any{"footer": "</script><script>alert(1)</script>"}))
	require.NoError(t, err)

	assert.False(t, strings.Contains(string(page.ConfigJSON), "</script>"))
	assert.Equal(t, "</script><script>alert(1)</script>", decodeConfig(t, page)["footer"])
}
