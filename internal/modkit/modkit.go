package modkit

import (
	"net/http"

	"activitycal/internal/modkit/httpkit"
	str "activitycal/internal/platform/strings"
)

// Module is what the api composes: routes, a name and optional ports
type Module interface {
	MountRoutes(r httpkit.Router)
	Ports() any
	Name() string
}

// Builder is the New signature every module exposes
type Builder func(Deps, ...Option) Module

// Base carries the routing half of a module. Modules embed it and set Routes
type Base struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler
	extra  func(httpkit.Router)

	// Routes registers the module's own endpoints
	Routes func(httpkit.Router)
}

// NewBase resolves b into a Base
func NewBase(b Built) Base {
	return Base{name: b.Name, prefix: b.Prefix, mws: b.Mw, extra: b.Register}
}

// MountRoutes mounts Routes and any extra registrations under the prefix with the module middleware
func (m Base) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.Prefix(), m.mws, func(rr httpkit.Router) {
		if m.Routes != nil {
			m.Routes(rr)
		}
		if m.extra != nil {
			m.extra(rr)
		}
	})
}

// Name returns the module name
func (m Base) Name() string { return m.name }

// Prefix returns the normalised mount prefix
func (m Base) Prefix() string { return str.MustPrefix(m.prefix) }
