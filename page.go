package swaggerui

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/CaioWing/swaggerui/internal/api/response"
)

type pageHandler struct {
	renderer *Renderer
	page     PageContext
	log      *slog.Logger
}

func (h *pageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	html, err := h.renderer.Render(r.Context(), indexTemplate, h.page)
	if err != nil {
		response.FromError(w, h.log, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, html)
}
