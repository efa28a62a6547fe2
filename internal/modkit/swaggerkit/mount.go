// Package swaggerkit serves the embedded OpenAPI document and the Swagger UI
package swaggerkit

import (
	_ "embed"
	"encoding/json"
	"net/http"

	phttp "activitycal/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed openapi.json
var openapiJSON []byte

// SpecMutator adjusts the parsed document before it is served
type SpecMutator func(map[string]any)

var mutators []SpecMutator

// Register adds a spec mutator. Call it from module init
func Register(m SpecMutator) {
	if m != nil {
		mutators = append(mutators, m)
	}
}

// Mount the Swagger UI and JSON spec if enabled. titleSuffix is appended to info.title when set
func Mount(r phttp.Router, enabled bool, titleSuffix string) {
	if !enabled {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", serveDocJSON(openapiJSON, titleSuffix))
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL("/api/docs/doc.json"),
	))
}

func serveDocJSON(doc []byte, titleSuffix string) phttp.Handler {
	return func(w http.ResponseWriter, _ *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal(doc, &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}
		if titleSuffix != "" {
			if info, ok := spec["info"].(map[string]any); ok {
				if title, ok := info["title"].(string); ok {
					info["title"] = title + " " + titleSuffix
				}
			}
		}
		ensureServers(spec, "/api/v1")
		for _, m := range mutators {
			m(spec)
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// ensureServers sets a default servers entry when the document has none
func ensureServers(spec map[string]any, url string) {
	if s, ok := spec["servers"].([]any); ok && len(s) > 0 {
		return
	}
	spec["servers"] = []any{map[string]any{"url": url}}
}
