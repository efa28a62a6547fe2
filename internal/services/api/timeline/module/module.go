// Package module wires the timeline API into HTTP via modkit
package module

import (
	"activitycal/internal/core/estimate"
	"activitycal/internal/modkit"
	"activitycal/internal/modkit/httpkit"
	"activitycal/internal/services/api/timeline/domain"
	timelinehttp "activitycal/internal/services/api/timeline/http"
	"activitycal/internal/services/api/timeline/repo"
	"activitycal/internal/services/api/timeline/service"
)

// Ports exposes the service for the api and the loader for the rollup job
type Ports struct {
	Service domain.ServicePort
	Loader  domain.Loader
}

// Module implements the timeline module
type Module struct {
	modkit.Base
	ports Ports
}

// New constructs the timeline module. The estimation policy comes from ACTIVITY_*
// and a bad policy fails startup
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("timeline"), modkit.WithPrefix("/timeline")}, opts...)...)

	policy, err := service.PolicyFromConfig(deps.Cfg.Prefix("ACTIVITY_"))
	if err != nil {
		deps.Log.Panic().Err(err).Msg("invalid estimation policy")
	}
	svc := service.New(deps.PG, repo.NewPG(), estimate.New(policy), deps.Now())

	m := &Module{Base: modkit.NewBase(b), ports: Ports{Service: svc, Loader: svc}}
	m.Routes = func(r httpkit.Router) { timelinehttp.Register(r, svc) }
	return m
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
