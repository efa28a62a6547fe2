package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "activitycal/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestMountServesDocument(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	Register(func(spec map[string]any) { spec["x-test"] = true })
	Mount(r, true, "(dev)")

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/api/docs/doc.json", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var spec map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &spec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	info := spec["info"].(map[string]any)
	if info["title"] != "activitycal API (dev)" {
		t.Fatalf("title = %v", info["title"])
	}
	if spec["x-test"] != true {
		t.Fatalf("mutator did not run")
	}
	paths := spec["paths"].(map[string]any)
	for _, p := range []string{"/timeline/index", "/timeline/grid", "/timeline/day", "/timeline/{vehicleID}/auctions.ics"} {
		if _, ok := paths[p]; !ok {
			t.Fatalf("missing path %s", p)
		}
	}
	servers := spec["servers"].([]any)
	if servers[0].(map[string]any)["url"] != "/api/v1" {
		t.Fatalf("servers = %v", servers)
	}
}

func TestMountDisabled(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	Mount(r, false, "")
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/api/docs/doc.json", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}
