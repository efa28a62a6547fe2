package module

import (
	"time"

	"github.com/robfig/cron/v3"

	"activitycal/internal/platform/config"
)

// Options for the rollup module
type Options struct {
	Schedule         string
	Workers          int
	Batch            int
	EnableLeases     bool
	LeaseTTL         time.Duration
	StatementTimeout time.Duration
}

// FromConfig fills options from environment
// ROLLUP_SCHEDULE (default "@every 15m") is a cron spec or descriptor
// ROLLUP_WORKERS (default 4) bounds concurrent vehicle rebuilds
// ROLLUP_BATCH (default 200) is the number of changed vehicles per page
// ROLLUP_LEASES (default true) guards passes against concurrent processes
// ROLLUP_STATEMENT_TIMEOUT (default 30s) bounds each lease statement
func FromConfig(cfg config.Conf) Options {
	n := cfg.Prefix("ROLLUP_")
	o := Options{
		Schedule:         n.MayString("SCHEDULE", "@every 15m"),
		Workers:          n.MayInt("WORKERS", 4),
		Batch:            n.MayInt("BATCH", 200),
		EnableLeases:     n.MayBool("LEASES", true),
		LeaseTTL:         n.MayDuration("LEASE_TTL", 10*time.Minute),
		StatementTimeout: n.MayDuration("STATEMENT_TIMEOUT", 30*time.Second),
	}
	return o
}

// Validate rejects a schedule cron cannot parse
func (o Options) Validate() error {
	_, err := cron.ParseStandard(o.Schedule)
	return err
}
