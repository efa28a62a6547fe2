package httpkit

import (
	"net/http"

	"activitycal/internal/platform/net/middleware"
)

// CORSOptions configures cross origin access for the api scope
type CORSOptions = middleware.CORSOptions

// CommonStack is the per scope middleware every api module runs behind
func CommonStack(cors CORSOptions) []func(http.Handler) http.Handler {
	return middleware.Defaults(cors)
}
