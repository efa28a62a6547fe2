package pg

import (
	"context"
	"strings"
	"time"

	"activitycal/internal/platform/logger"

	"github.com/rs/zerolog"
)

// QueryEvent describes one finished statement
type QueryEvent struct {
	SQL     string
	Args    []any
	Elapsed time.Duration
	Err     error
	Slow    bool
}

// QueryTracer receives every statement the store adapter runs
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer logs statements at debug regardless of the root level, slow ones at warn
func Tracer(root logger.Logger) QueryTracer {
	return zlTracer{log: root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()}
}

type zlTracer struct{ log logger.Logger }

func (z zlTracer) OnQuery(_ context.Context, ev QueryEvent) {
	evt := z.log.Debug()
	switch {
	case ev.Err != nil:
		evt = z.log.Error().Err(ev.Err)
	case ev.Slow:
		evt = z.log.Warn()
	}
	evt.Dur("elapsed", ev.Elapsed).
		Str("sql", Compact(ev.SQL)).
		Int("args", len(ev.Args)).
		Msg("pg query")
}

// Compact folds runs of whitespace in a statement to single spaces
func Compact(sql string) string { return strings.Join(strings.Fields(sql), " ") }
