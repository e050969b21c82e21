package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/CaioWing/swaggerui"
	"github.com/CaioWing/swaggerui/internal/api/docs"
	"github.com/CaioWing/swaggerui/internal/api/middleware"
	"github.com/CaioWing/swaggerui/internal/api/response"
	"github.com/CaioWing/swaggerui/internal/config"
)

type RouterDeps struct {
	Docs        config.DocsConfig
	RateLimiter *middleware.RateLimiter
	CORSOrigins string
	Logger      *slog.Logger
}

func NewRouter(deps RouterDeps) (http.Handler, error) {
	r := chi.NewRouter()

	// Metrics
	metrics := middleware.NewMetrics()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(metrics.Middleware())

	// CORS, so viewers hosted elsewhere can load the API definition
	origins := strings.Split(deps.CORSOrigins, ",")
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Prometheus metrics
	r.Get("/metrics", metrics.Handler())

	// API definition served to the UI
	r.Get("/openapi.yaml", docs.Handler())

	// Documentation UI
	var docsRouter chi.Router = r
	if deps.RateLimiter != nil {
		docsRouter = r.With(deps.RateLimiter.Handler)
	}

	opts := []swaggerui.Option{
		swaggerui.WithPageTitle(deps.Docs.PageTitle),
		swaggerui.WithFaviconURL(deps.Docs.FaviconURL),
		swaggerui.WithURIPrefix(deps.Docs.URIPrefix),
		swaggerui.WithConfig(deps.Docs.Overrides),
		swaggerui.WithLogger(deps.Logger),
	}
	if deps.Docs.StaticDir != "" {
		opts = append(opts, swaggerui.WithStaticDir(deps.Docs.StaticDir))
	}
	if deps.Docs.CacheTemplates {
		opts = append(opts, swaggerui.WithTemplateCache())
	}

	if err := swaggerui.Register(docsRouter, deps.Docs.Mount, deps.Docs.APIURL, opts...); err != nil {
		return nil, fmt.Errorf("mount documentation UI: %w", err)
	}

	return r, nil
}
