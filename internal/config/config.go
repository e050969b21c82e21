package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server    ServerConfig
	Docs      DocsConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Host string
	Port string
}

type DocsConfig struct {
	Mount          string
	URIPrefix      string
	PageTitle      string
	FaviconURL     string
	APIURL         string
	StaticDir      string
	CacheTemplates bool
	ConfigFile     string
	// Overrides holds the UI options read from ConfigFile.
	Overrides map[string]any
}

type CORSConfig struct {
	AllowedOrigins string
}

type RateLimitConfig struct {
	Rate  float64
	Burst int
}

func Load() (*Config, error) {
	cacheTemplates, err := strconv.ParseBool(envOrDefault("SWAGGERUI_CACHE_TEMPLATES", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid SWAGGERUI_CACHE_TEMPLATES: %w", err)
	}

	rate, err := strconv.ParseFloat(envOrDefault("SWAGGERUI_RATE_LIMIT", "20"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid SWAGGERUI_RATE_LIMIT: %w", err)
	}

	burst, err := strconv.Atoi(envOrDefault("SWAGGERUI_RATE_BURST", "40"))
	if err != nil {
		return nil, fmt.Errorf("invalid SWAGGERUI_RATE_BURST: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: envOrDefault("SWAGGERUI_HOST", "0.0.0.0"),
			Port: envOrDefault("SWAGGERUI_PORT", "8080"),
		},
		Docs: DocsConfig{
			Mount:          envOrDefault("SWAGGERUI_MOUNT", "/docs"),
			URIPrefix:      os.Getenv("SWAGGERUI_URI_PREFIX"),
			PageTitle:      envOrDefault("SWAGGERUI_PAGE_TITLE", "Swagger UI"),
			FaviconURL:     os.Getenv("SWAGGERUI_FAVICON_URL"),
			APIURL:         envOrDefault("SWAGGERUI_API_URL", "/openapi.yaml"),
			StaticDir:      os.Getenv("SWAGGERUI_STATIC_DIR"),
			CacheTemplates: cacheTemplates,
			ConfigFile:     os.Getenv("SWAGGERUI_CONFIG_FILE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: envOrDefault("SWAGGERUI_CORS_ORIGINS", "*"),
		},
		RateLimit: RateLimitConfig{
			Rate:  rate,
			Burst: burst,
		},
	}

	if cfg.Docs.ConfigFile != "" {
		overrides, err := LoadOverrides(cfg.Docs.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg.Docs.Overrides = overrides
	}

	return cfg, nil
}

// LoadOverrides reads UI options from a JSON object on disk. Nested values are
// returned as decoded, so only the top-level keys act as overrides.
func LoadOverrides(path string) (map[string]any, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return nil, fmt.Errorf("load config file %s: %w", path, err)
	}
	return k.Raw(), nil
}

func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
