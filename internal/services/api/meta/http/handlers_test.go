package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"activitycal/internal/modkit/httpkit"
	phttp "activitycal/internal/platform/net/http"
	ptime "activitycal/internal/platform/time"

	"github.com/go-chi/chi/v5"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func serve(t *testing.T, d Deps, path string) (int, map[string]any) {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())
	httpkit.MountUnder(r, "/meta", nil, func(rr httpkit.Router) { Register(rr, d) })
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
	var env struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rec.Code, env.Data
}

func TestReady(t *testing.T) {
	tests := []struct {
		name   string
		pg, ch interface{ Ping(context.Context) error }
		status int
		want   string
	}{
		{"all ok", pinger{}, pinger{}, 200, "ok"},
		{"ch disabled", pinger{}, nil, 200, "degraded"},
		{"pg down", pinger{err: errors.New("connection refused")}, pinger{}, stdhttp.StatusServiceUnavailable, "fail"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := Deps{ServiceName: "activitycal-api"}
			if tc.pg != nil {
				d.PG = tc.pg
			}
			if tc.ch != nil {
				d.CH = tc.ch
			}
			code, data := serve(t, d, "/meta/ready")
			if code != tc.status || data["status"] != tc.want {
				t.Fatalf("ready = %d %v", code, data)
			}
		})
	}
}

func TestServiceAndVersion(t *testing.T) {
	started := time.Date(2026, 3, 3, 13, 0, 0, 0, time.UTC)
	d := Deps{ServiceName: "activitycal-api", StartedAt: started, Clock: ptime.Fixed(started.Add(5 * time.Minute))}

	_, data := serve(t, d, "/meta/service")
	if data["uptime"] != float64(300) || data["name"] != "activitycal-api" {
		t.Fatalf("service = %v", data)
	}
	_, data = serve(t, d, "/meta/version")
	if data["service"] != "activitycal-api" || data["version"] == "" {
		t.Fatalf("version = %v", data)
	}
	_, data = serve(t, d, "/meta/health")
	if data["ok"] != true || data["now"] != "2026-03-03T13:05:00Z" {
		t.Fatalf("health = %v", data)
	}
}
