package swaggerui

import (
	"encoding/json"
	"fmt"
	"html/template"
	"maps"

	"github.com/CaioWing/swaggerui/internal/domain"
)

// Identity fields are rendered into the page as attributes and never reach
// the embedded JSON.
const (
	KeyAppName      = "app_name"
	KeyClientRealm  = "client_realm"
	KeyClientID     = "client_id"
	KeyClientSecret = "client_secret"
)

// unset is what the viewer script reads as "not configured".
const unset = "null"

// Config holds Swagger UI options keyed by option name.
type Config map[string]any

// DefaultConfig returns a fresh copy of the default options. Callers may
// modify the result freely.
func DefaultConfig() Config {
	return Config{
		KeyClientRealm:           unset,
		KeyClientID:              unset,
		KeyClientSecret:          unset,
		KeyAppName:               unset,
		"docExpansion":           "none",
		"jsonEditor":             false,
		"defaultModelRendering":  "schema",
		"showRequestHeaders":     false,
		"supportedSubmitMethods": []string{"get", "post", "put", "delete", "patch"},
	}
}

// merge overlays overrides on a new set of defaults, one level deep.
func merge(overrides map[string]any) Config {
	cfg := DefaultConfig()
	maps.Copy(cfg, overrides)
	return cfg
}

// PageContext is everything the index template needs. It is computed once per
// registration and shared read-only by every request.
type PageContext struct {
	PageTitle    string
	FaviconURL   string
	BaseURL      string
	APIURL       string
	AppName      string
	ClientRealm  string
	ClientID     string
	ClientSecret string
	ConfigJSON   template.JS
}

// BuildPageContext computes the context Register would render the page with.
func BuildPageContext(mountURI, apiURL string, opts ...Option) (PageContext, error) {
	return buildPageContext(mountURI, apiURL, newOptions(opts))
}

func buildPageContext(mountURI, apiURL string, o *options) (PageContext, error) {
	if err := validateMount(mountURI); err != nil {
		return PageContext{}, err
	}
	if apiURL == "" {
		return PageContext{}, fmt.Errorf("%w: api url is required", domain.ErrInvalidInput)
	}

	cfg := merge(o.config)

	page := PageContext{
		PageTitle:  o.pageTitle,
		FaviconURL: o.faviconURL,
		BaseURL:    baseURL(o.uriPrefix, mountURI),
		APIURL:     apiURL,
	}

	var err error
	if page.AppName, err = popString(cfg, KeyAppName); err != nil {
		return PageContext{}, err
	}
	if page.ClientRealm, err = popString(cfg, KeyClientRealm); err != nil {
		return PageContext{}, err
	}
	if page.ClientID, err = popString(cfg, KeyClientID); err != nil {
		return PageContext{}, err
	}
	if page.ClientSecret, err = popString(cfg, KeyClientSecret); err != nil {
		return PageContext{}, err
	}

	// encoding/json escapes <, > and &, so the blob is safe inside a script
	// element.
	raw, err := json.Marshal(cfg)
	if err != nil {
		return PageContext{}, fmt.Errorf("%w: encode config: %v", domain.ErrInvalidInput, err)
	}
	page.ConfigJSON = template.JS(raw)

	return page, nil
}

// popString removes key from cfg and returns it as a string. A nil value
// counts as unset.
func popString(cfg Config, key string) (string, error) {
	v := cfg[key]
	delete(cfg, key)

	switch s := v.(type) {
	case nil:
		return unset, nil
	case string:
		return s, nil
	default:
		return "", fmt.Errorf("%w: %s must be a string, got %T", domain.ErrInvalidInput, key, v)
	}
}

// baseURL is the prefix the page uses to reach its own assets. Mounting at the
// root yields the bare prefix so asset URLs don't start with "//".
func baseURL(uriPrefix, mountURI string) string {
	if mountURI == "/" {
		return uriPrefix
	}
	return uriPrefix + mountURI
}
