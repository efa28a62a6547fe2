// Package module holds the minimal module contract plus the port registry used for cross module wiring
package module

import phttp "activitycal/internal/platform/net/http"

// Module mirrors modkit.Module without importing modkit
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
