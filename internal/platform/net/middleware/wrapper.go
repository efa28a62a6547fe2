// Package middleware adapts chi middleware and adds the in house ones, without leaking chi types
package middleware

import (
	"compress/flate"
	"net/http"
	"time"

	pstrings "activitycal/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Middleware is the stdlib middleware shape
type Middleware = func(http.Handler) http.Handler

// RequestID propagates or mints X-Request-ID
func RequestID() Middleware { return chimw.RequestID }

// RealIP trusts X-Forwarded-For and X-Real-IP
func RealIP() Middleware { return chimw.RealIP }

// Timeout cancels the request context after d
func Timeout(d time.Duration) Middleware { return chimw.Timeout(d) }

// NoCache disables client and proxy caching
func NoCache() Middleware { return chimw.NoCache }

// Compress gzips/deflates responses at level
func Compress(level int) Middleware {
	c := chimw.NewCompressor(level)
	return c.Handler
}

// StripSlashes drops a trailing slash before routing
func StripSlashes() Middleware { return chimw.StripSlashes }

// Heartbeat answers GET path with 200 before routing, for load balancers
func Heartbeat(path string) Middleware { return chimw.Heartbeat(path) }

// CORSOptions is the narrow surface over go-chi/cors
type CORSOptions struct {
	AllowedOrigins []string
	MaxAge         int
}

// CORS allows browser reads of the timeline endpoints
func CORS(o CORSOptions) Middleware {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: pstrings.IfEmpty(o.AllowedOrigins, []string{"*"}),
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         o.MaxAge,
	})
}

// Defaults is the baseline stack for the api
func Defaults(cors CORSOptions) []Middleware {
	return []Middleware{
		RequestID(),
		RealIP(),
		AccessLog(AccessLogOptions{Slow: 500 * time.Millisecond}),
		RecoverJSON,
		CORS(cors),
		NoCache(),
		Compress(flate.BestSpeed),
		StripSlashes(),
		Timeout(30 * time.Second),
	}
}
