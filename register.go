package swaggerui

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/CaioWing/swaggerui/internal/domain"
)

// Mux is the part of a router Register needs. chi.Router satisfies it.
type Mux interface {
	Get(pattern string, h http.HandlerFunc)
	Handle(pattern string, h http.Handler)
}

// Register mounts the documentation page at mountURI and a static asset sink
// below it. apiURL is the address of the OpenAPI document the viewer loads.
//
// Every call builds its own configuration, so the UI can be mounted at several
// URIs in one process.
func Register(mux Mux, mountURI, apiURL string, opts ...Option) error {
	o := newOptions(opts)

	page, err := buildPageContext(mountURI, apiURL, o)
	if err != nil {
		return err
	}

	store, source, err := o.fileStore()
	if err != nil {
		return err
	}

	mountID := uuid.New()
	log := o.log.With("component", "swaggerui", "mount_id", mountID.String(), "mount", mountURI)
	tracer := o.tracerProvider.Tracer(tracerName)

	rendererOpts := []RendererOption{WithRenderTracer(tracer)}
	if o.cacheTemplates {
		rendererOpts = append(rendererOpts, WithParsedTemplateCache())
	}

	mux.Handle(sinkPattern(mountURI), &staticSink{
		store:  store,
		tracer: tracer,
		log:    log,
	})

	pages := &pageHandler{
		renderer: NewRenderer(o.templates, rendererOpts...),
		page:     page,
		log:      log,
	}
	mux.Get(mountURI, pages.ServeHTTP)

	log.Info("documentation UI registered",
		"base_url", page.BaseURL,
		"api_url", page.APIURL,
		"static", sinkPattern(mountURI),
		"static_root", source,
	)
	return nil
}

func validateMount(mountURI string) error {
	if !strings.HasPrefix(mountURI, "/") {
		return fmt.Errorf("%w: mount uri %q must start with /", domain.ErrInvalidInput, mountURI)
	}
	if strings.ContainsAny(mountURI, "*{}") {
		return fmt.Errorf("%w: mount uri %q must not contain route patterns", domain.ErrInvalidInput, mountURI)
	}
	return nil
}

// sinkPattern captures everything after the mount URI without doubling a
// trailing slash.
func sinkPattern(mountURI string) string {
	if strings.HasSuffix(mountURI, "/") {
		return mountURI + "*"
	}
	return mountURI + "/*"
}
