package swaggerui

import (
	"fmt"
	"io/fs"
	"log/slog"

	swguistatic "github.com/swaggest/swgui/v5/static"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/CaioWing/swaggerui/internal/storage"
	"github.com/CaioWing/swaggerui/internal/storage/embedded"
	"github.com/CaioWing/swaggerui/internal/storage/gzipped"
	"github.com/CaioWing/swaggerui/internal/storage/local"
)

const tracerName = "github.com/CaioWing/swaggerui"

type options struct {
	pageTitle      string
	faviconURL     string
	uriPrefix      string
	config         map[string]any
	log            *slog.Logger
	tracerProvider trace.TracerProvider
	templates      fs.FS
	static         fs.FS // nil means the built-in assets
	staticDir      string
	cacheTemplates bool
}

// Option customises a registration.
type Option func(*options)

func newOptions(opts []Option) *options {
	o := &options{
		pageTitle: "Swagger UI",
		log:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.tracerProvider == nil {
		o.tracerProvider = otel.GetTracerProvider()
	}
	if o.templates == nil {
		o.templates = mustSub(assets, templatesDir)
	}
	return o
}

// WithPageTitle sets the document title. Defaults to "Swagger UI".
func WithPageTitle(title string) Option {
	return func(o *options) { o.pageTitle = title }
}

// WithFaviconURL links a favicon from the page. No favicon is linked by
// default.
func WithFaviconURL(url string) Option {
	return func(o *options) { o.faviconURL = url }
}

// WithConfig overrides UI options key by key. The map is read, never
// modified.
func WithConfig(cfg map[string]any) Option {
	return func(o *options) { o.config = cfg }
}

// WithURIPrefix is prepended to the mount URI when the page builds asset URLs,
// for hosts served behind a path-rewriting proxy.
func WithURIPrefix(prefix string) Option {
	return func(o *options) { o.uriPrefix = prefix }
}

func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}

// WithAssets replaces the embedded templates and static files. Both filesystems
// are used from their root; templates must contain index.html. A nil argument
// keeps the built-in copy of that half.
func WithAssets(templates, static fs.FS) Option {
	return func(o *options) {
		if templates != nil {
			o.templates = templates
		}
		if static != nil {
			o.static = static
		}
	}
}

// WithStaticDir serves static files from dir on disk instead of the embedded
// copy. It takes precedence over the static half of WithAssets.
func WithStaticDir(dir string) Option {
	return func(o *options) { o.staticDir = dir }
}

// WithTemplateCache keeps parsed templates in memory instead of parsing the
// template on every render.
func WithTemplateCache() Option {
	return func(o *options) { o.cacheTemplates = true }
}

// fileStore picks the static store and names its source for logging.
func (o *options) fileStore() (storage.FileStore, string, error) {
	if o.staticDir != "" {
		store, err := local.New(o.staticDir)
		if err != nil {
			return nil, "", fmt.Errorf("static dir: %w", err)
		}
		return store, store.Root(), nil
	}

	if o.static != nil {
		store, err := embedded.New(o.static, ".")
		if err != nil {
			return nil, "", fmt.Errorf("static assets: %w", err)
		}
		return store, "custom", nil
	}

	store, err := builtinStore()
	if err != nil {
		return nil, "", fmt.Errorf("static assets: %w", err)
	}
	return store, "embedded", nil
}

// builtinStore layers the page's own files over the Swagger UI distribution
// vendored by swgui. swgui keeps the large bundles gzip-compressed, so those
// are inflated as they are served.
func builtinStore() (storage.FileStore, error) {
	own, err := embedded.New(assets, staticDir)
	if err != nil {
		return nil, err
	}
	dist, err := embedded.New(swguistatic.FS, ".")
	if err != nil {
		return nil, err
	}
	return storage.Overlay{own, dist, gzipped.New(dist)}, nil
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
