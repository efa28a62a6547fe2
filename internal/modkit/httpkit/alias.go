// Package httpkit re-exports the platform http helpers modules use, so modules
// never import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "activitycal/internal/platform/net/http"
)

type (
	// Envelope is the JSON body wrapper
	Envelope = phttp.Envelope
	// Response is a return style reply
	Response = phttp.Response
	// Handler is a plain handler func
	Handler = phttp.Handler
	// Router is the routing seam
	Router = phttp.Router
)

// OK returns a 200 envelope
func OK(data any) Response { return phttp.OK(data) }

// Error maps err to its status and envelope
func Error(err error) Response { return phttp.Error(err) }

// Raw returns body as is with contentType
func Raw(contentType string, body []byte) Response { return phttp.Raw(contentType, body) }

// Handle adapts a Response returning func
func Handle(fn func(*http.Request) Response) Handler { return phttp.Handle(fn) }

// URLParam reads a path parameter
func URLParam(r *http.Request, name string) string { return phttp.URLParam(r, name) }
