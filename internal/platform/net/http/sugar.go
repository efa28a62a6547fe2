package http

import "net/http"

// GetJSON mounts a body less JSON endpoint
func GetJSON(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, CallHandler(h))
}

// PostJSON mounts a JSON endpoint decoding T
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, JSONHandler(h))
}
