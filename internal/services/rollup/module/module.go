// Package module wires up the rollup job as a modkit.Module
package module

import (
	"context"

	"activitycal/internal/modkit"
	"activitycal/internal/modkit/httpkit"
	modreg "activitycal/internal/modkit/module"
	"activitycal/internal/modkit/repokit"

	tdomain "activitycal/internal/services/api/timeline/domain"
	rdomain "activitycal/internal/services/rollup/domain"
	"activitycal/internal/services/rollup/guardrails"
	rrepo "activitycal/internal/services/rollup/repo"
	rservice "activitycal/internal/services/rollup/service"
)

// Name is the module and registry name
const Name = "rollup"

// Ports exported by the rollup module
type Ports struct {
	Runner rdomain.RunnerPort
}

// Module implements modkit.Module for the rollup job
type Module struct {
	opts  Options
	svc   *rservice.Service
	ports Ports
}

// New wires the rollup job. It needs Postgres, ClickHouse and the timeline loader
func New(deps modkit.Deps, opts Options, loader tdomain.Loader) *Module {
	if err := opts.Validate(); err != nil {
		deps.Log.Panic().Err(err).Str("schedule", opts.Schedule).Msg("invalid rollup schedule")
	}
	db := repokit.WithBeginHooks(deps.PG, repokit.StatementTimeout(opts.StatementTimeout))

	var lease guardrails.Lease
	if opts.EnableLeases {
		lease = guardrails.MakeLease(db, Name, opts.LeaseTTL)
	}
	svc := rservice.New(db, rrepo.NewPG(), rrepo.NewCHSink(deps.CH), loader,
		rservice.Config{Workers: opts.Workers, Batch: opts.Batch}, deps.Now(), lease)

	m := &Module{opts: opts, svc: svc}
	m.ports = Ports{Runner: svc}
	modreg.Register(Name, m.ports)
	return m
}

// RunOnce runs a single pass
func (m *Module) RunOnce(ctx context.Context) (rdomain.PassStats, error) { return m.svc.RunOnce(ctx) }

// Schedule runs passes on the configured schedule until ctx is done
func (m *Module) Schedule(ctx context.Context) error { return m.svc.Schedule(ctx, m.opts.Schedule) }

// Name returns the module name
func (m *Module) Name() string { return Name }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// MountRoutes is a no-op: the rollup job has no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}
