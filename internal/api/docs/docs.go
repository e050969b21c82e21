package docs

import (
	_ "embed"
	"net/http"
)

// OpenAPISpec describes the demo host's own endpoints. It is the API
// definition the mounted UI loads by default.
//
//go:embed openapi.yaml
var OpenAPISpec []byte

func Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.WriteHeader(http.StatusOK)
		w.Write(OpenAPISpec)
	}
}
