// Package modkit wires modules: shared deps, build options and the module contract
package modkit

import (
	"activitycal/internal/modkit/repokit"
	"activitycal/internal/platform/config"
	"activitycal/internal/platform/logger"
	"activitycal/internal/platform/store"
	ptime "activitycal/internal/platform/time"
)

// Deps are the shared dependencies handed to every module. PG and CH are nil when disabled
type Deps struct {
	Log   logger.Logger
	Cfg   config.Conf
	PG    repokit.TxRunner
	CH    store.Clickhouse
	Clock ptime.Clock
}

// Now returns the deps clock, defaulting to the system clock
func (d Deps) Now() ptime.Clock {
	if d.Clock == nil {
		return ptime.System()
	}
	return d.Clock
}
