package httpkit

import (
	"net/http"

	phttp "activitycal/internal/platform/net/http"
)

// PostJSON mounts a POST endpoint that binds and validates a T body
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.PostJSON(r, path, h)
}

// Get mounts a body less GET endpoint with the envelope
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	phttp.GetJSON(r, path, h)
}
