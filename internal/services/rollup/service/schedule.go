package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"activitycal/internal/platform/logger"
)

// Schedule runs RunOnce on spec until ctx is done. A pass still running when the
// next tick fires makes that tick a no-op
func (s *Service) Schedule(ctx context.Context, spec string) error {
	cl := cronLogger{l: logger.Named("rollup-cron")}
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	if _, err := c.AddFunc(spec, func() { _, _ = s.RunOnce(ctx) }); err != nil {
		return err
	}
	c.Start()
	logger.Named("rollup").Info().Str("schedule", spec).Msg("rollup: scheduler started")

	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}

// cronLogger adapts zerolog to cron.Logger
type cronLogger struct{ l *logger.Logger }

func (c cronLogger) Info(msg string, kv ...any) {
	c.l.Debug().Fields(kv).Msg(msg)
}

func (c cronLogger) Error(err error, msg string, kv ...any) {
	c.l.Error().Err(err).Fields(kv).Msg(msg)
}
