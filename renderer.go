package swaggerui

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Renderer renders html/template files from a filesystem. Without a cache it
// reads and parses the template on every call, so edits to an on-disk
// filesystem show up on the next render.
type Renderer struct {
	fsys   fs.FS
	tracer trace.Tracer
	cache  bool

	mu     sync.RWMutex
	parsed map[string]*template.Template
}

type RendererOption func(*Renderer)

// WithParsedTemplateCache keeps each parsed template, keyed by name, for the
// life of the Renderer.
func WithParsedTemplateCache() RendererOption {
	return func(r *Renderer) { r.cache = true }
}

func WithRenderTracer(tracer trace.Tracer) RendererOption {
	return func(r *Renderer) { r.tracer = tracer }
}

func NewRenderer(fsys fs.FS, opts ...RendererOption) *Renderer {
	r := &Renderer{
		fsys:   fsys,
		parsed: make(map[string]*template.Template),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.tracer == nil {
		r.tracer = otel.Tracer(tracerName)
	}
	return r
}

// Render executes the named template with data. A template that does not exist
// yields an error matching fs.ErrNotExist.
func (r *Renderer) Render(ctx context.Context, name string, data any) (string, error) {
	_, span := r.tracer.Start(ctx, "swaggerui.Render",
		trace.WithAttributes(attribute.String("template.name", name)))
	defer span.End()

	tmpl, err := r.template(name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load template")
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "execute template")
		return "", fmt.Errorf("execute template %q: %w", name, err)
	}
	return buf.String(), nil
}

func (r *Renderer) template(name string) (*template.Template, error) {
	if r.cache {
		r.mu.RLock()
		tmpl, ok := r.parsed[name]
		r.mu.RUnlock()
		if ok {
			return tmpl, nil
		}
	}

	src, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("load template %q: %w", name, err)
	}

	tmpl, err := template.New(name).Funcs(funcs).Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("parse template %q: %w", name, err)
	}

	if r.cache {
		r.mu.Lock()
		r.parsed[name] = tmpl
		r.mu.Unlock()
	}
	return tmpl, nil
}

var funcs = template.FuncMap{
	// asset joins a base URL and an asset name with exactly one slash.
	"asset": func(base, name string) string {
		return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(name, "/")
	},
}
