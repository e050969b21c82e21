package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/CaioWing/swaggerui/internal/domain"
)

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// FromError maps err onto a response. domain.ErrNotFound becomes a 404 with a
// fixed body; anything else is logged and reported as a 500.
func FromError(w http.ResponseWriter, log *slog.Logger, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		Error(w, http.StatusNotFound, "not found")
		return
	}
	log.Error("request failed", "err", err)
	Error(w, http.StatusInternalServerError, "internal server error")
}
