// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"activitycal/internal/modkit"
	"activitycal/internal/modkit/httpkit"
	"activitycal/internal/platform/store"

	metahttp "activitycal/internal/services/api/meta/http"
)

// ServiceName is reported by health, version and service
const ServiceName = "activitycal-api"

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
}

// New constructs a meta module. Readiness pings whichever stores deps carries
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	clock := deps.Now()
	md := metahttp.Deps{ServiceName: ServiceName, StartedAt: clock(), Clock: clock}
	if p, ok := deps.PG.(store.Pinger); ok && deps.PG != nil {
		md.PG = p
	}
	if deps.CH != nil {
		md.CH = deps.CH
	}

	m := &Module{Base: modkit.NewBase(b)}
	m.Routes = func(r httpkit.Router) { metahttp.Register(r, md) }
	return m
}

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
