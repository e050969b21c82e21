package swaggerui

import (
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/CaioWing/swaggerui/internal/api/response"
	"github.com/CaioWing/swaggerui/internal/domain"
	"github.com/CaioWing/swaggerui/internal/storage"
)

// staticSink streams files below the mount URI out of a FileStore. Paths that
// escape the store and files that don't exist get the same 404.
type staticSink struct {
	store  storage.FileStore
	tracer trace.Tracer
	log    *slog.Logger
}

func (s *staticSink) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name, err := wildcardPath(r)
	if err != nil {
		response.FromError(w, s.log, domain.ErrNotFound)
		return
	}

	_, span := s.tracer.Start(r.Context(), "swaggerui.ServeStatic",
		trace.WithAttributes(attribute.String("file.path", name)))
	defer span.End()

	info, err := s.store.Stat(name)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		response.FromError(w, s.log, err)
		return
	}

	f, err := s.store.Open(name)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		response.FromError(w, s.log, err)
		return
	}
	defer f.Close()

	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		w.Header().Set("Content-Type", ct)
	} else {
		// A present but nil entry stops net/http from sniffing one.
		w.Header()["Content-Type"] = nil
	}
	if size := info.Size(); size >= 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	}
	w.WriteHeader(http.StatusOK)

	if r.Method == http.MethodHead {
		return
	}
	n, err := io.Copy(w, f)
	span.SetAttributes(attribute.Int64("file.bytes_written", n))
	if err != nil {
		// Headers are gone; all that's left is to note it.
		span.RecordError(err)
		s.log.Warn("static file copy interrupted", "path", name, "written", n, "err", err)
	}
}

// wildcardPath returns the decoded part of the URL captured by the sink's
// trailing "*". chi hands back the raw, still escaped form when the request
// carried one.
func wildcardPath(r *http.Request) (string, error) {
	p := chi.URLParam(r, "*")
	if r.URL.RawPath == "" {
		return p, nil
	}
	return url.PathUnescape(p)
}
