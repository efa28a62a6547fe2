// Package api composes the HTTP API from its modules
package api

import (
	"activitycal/internal/platform/config"
	"activitycal/internal/platform/logger"
	phttp "activitycal/internal/platform/net/http"
	"activitycal/internal/platform/store"
	ptime "activitycal/internal/platform/time"

	"activitycal/internal/modkit"
	"activitycal/internal/modkit/httpkit"
	"activitycal/internal/modkit/module"
	"activitycal/internal/modkit/swaggerkit"

	metamod "activitycal/internal/services/api/meta/module"
	timelinemod "activitycal/internal/services/api/timeline/module"
)

// Options are the API options
type Options struct {
	// Config is the unprefixed root view, modules pick their own prefixes
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Clock          ptime.Clock
	CORS           httpkit.CORSOptions
	EnableSwagger  bool
	EnableProfiler bool
	DocsSuffix     string
}

// Mount mounts every module under /api/v1 and returns them
func Mount(r phttp.Router, opt Options) []modkit.Module {
	log := opt.Logger
	if log == nil {
		log = logger.Get()
	}
	st := opt.Store
	if st == nil {
		st = &store.Store{}
	}
	deps := modkit.Deps{
		Log:   *log,
		Cfg:   opt.Config,
		PG:    st.PG,
		CH:    st.CH,
		Clock: opt.Clock,
	}

	mods := []modkit.Module{
		metamod.New(deps),
		timelinemod.New(deps),
	}

	swaggerkit.Mount(r, opt.EnableSwagger, opt.DocsSuffix)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.CORS), func(api httpkit.Router) {
		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
	return mods
}
