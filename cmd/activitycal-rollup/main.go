package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"activitycal/internal/modkit"
	"activitycal/internal/modkit/module"
	"activitycal/internal/modkit/repokit"
	"activitycal/internal/platform/config"
	"activitycal/internal/platform/logger"
	"activitycal/internal/platform/store"

	timelinemod "activitycal/internal/services/api/timeline/module"
	timelinerepo "activitycal/internal/services/api/timeline/repo"
	rollupmod "activitycal/internal/services/rollup/module"
	rolluprepo "activitycal/internal/services/rollup/repo"
)

func main() {
	var (
		fOnce    = flag.Bool("once", false, "run a single pass and exit")
		fMigrate = flag.Bool("migrate", false, "create the source and watermark tables before running")
	)
	flag.Parse()

	root := config.New()
	l := logger.Named("rollup")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stCfg := store.ConfigFromEnv(root, "activitycal-rollup")
	if !stCfg.PG.Enabled || !stCfg.CH.Enabled {
		l.Fatal().Msg("rollup needs SERVICE_PGSQL_DBURL and SERVICE_CLICKHOUSE_DBURL")
	}
	st, err := store.Open(ctx, stCfg, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	if *fMigrate {
		for _, ddl := range []string{timelinerepo.Schema, rolluprepo.Schema} {
			if _, err := st.PG.Exec(ctx, ddl); err != nil {
				l.Fatal().Err(err).Msg("migrate failed")
			}
		}
	}

	deps := modkit.Deps{Log: *l, Cfg: root, PG: st.PG, CH: st.CH}

	// the rollup reuses the timeline snapshot so both surfaces agree
	tl := timelinemod.New(deps)
	module.Register(tl.Name(), tl.Ports())
	loader := module.MustPortsOf[timelinemod.Ports](tl).Loader

	job := rollupmod.New(deps, rollupmod.FromConfig(root), loader)

	if *fOnce {
		stats, err := job.RunOnce(ctx)
		if err != nil {
			l.Fatal().Err(err).Msg("rollup pass failed")
		}
		l.Info().Str("status", stats.Status).Int("vehicles", stats.Vehicles).Int("rows", stats.Rows).Msg("rollup pass done")
		return
	}
	if err := job.Schedule(ctx); err != nil {
		l.Fatal().Err(err).Msg("rollup scheduler stopped")
	}
}
