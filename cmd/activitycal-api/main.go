// @title         Activity Calendar API
// @version       0.1.0
// @description   Read only vehicle activity timeline endpoints

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"activitycal/internal/modkit/httpkit"
	"activitycal/internal/modkit/repokit"
	"activitycal/internal/platform/config"
	"activitycal/internal/platform/logger"
	phttp "activitycal/internal/platform/net/http"
	"activitycal/internal/platform/store"

	"activitycal/internal/services/api"
	metamod "activitycal/internal/services/api/meta/module"
)

func main() {
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stCfg := store.ConfigFromEnv(root, metamod.ServiceName)
	if !stCfg.PG.Enabled {
		l.Fatal().Msg("SERVICE_PGSQL_DBURL is required")
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

	// reads CORE_API_PORT / CORE_API_ADDR
	srv := phttp.NewServer(apiCfg)

	api.Mount(srv.Router(), api.Options{
		Config:         root,
		Store:          st,
		Logger:         l,
		CORS:           httpkit.CORSOptions{AllowedOrigins: apiCfg.MayCSV("CORS_ORIGINS", nil)},
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
		DocsSuffix:     apiCfg.MayString("DOCS_SUFFIX", ""),
	})

	l.Info().Str("addr", srv.Addr()).Msg("activitycal api listening")
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
