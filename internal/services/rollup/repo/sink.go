package repo

import (
	"context"
	"time"

	perr "activitycal/internal/platform/errors"
	"activitycal/internal/platform/store"
	"activitycal/internal/services/rollup/domain"
)

// Table is the ClickHouse day aggregate table
const Table = "activity_day_agg"

// a rebuild replaces rows by (vehicle_id, day), the newest built_at wins on merge
const createTableSQL = `
CREATE TABLE IF NOT EXISTS activity_day_agg (
    vehicle_id  String,
    day         Date,
    events      UInt32,
    photos      UInt32,
    hours       Float64,
    value_usd   Float64,
    weight      Float64,
    built_at    DateTime64(3, 'UTC')
)
ENGINE = ReplacingMergeTree(built_at)
ORDER BY (vehicle_id, day)`

var columns = []string{"vehicle_id", "day", "events", "photos", "hours", "value_usd", "weight", "built_at"}

// CHSink writes day aggregates to ClickHouse
type CHSink struct{ ch store.Clickhouse }

// NewCHSink wraps a ClickHouse client
func NewCHSink(ch store.Clickhouse) *CHSink {
	if ch == nil {
		panic("rollup sink requires a ClickHouse client")
	}
	return &CHSink{ch: ch}
}

// EnsureTable creates the table when missing
func (s *CHSink) EnsureTable(ctx context.Context) error {
	if err := s.ch.Exec(ctx, createTableSQL); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "create "+Table)
	}
	return nil
}

// ExistingDays lists days that currently have activity for the vehicle
func (s *CHSink) ExistingDays(ctx context.Context, vehicleID string) ([]time.Time, error) {
	rows, err := s.ch.Query(ctx, `
		SELECT day FROM activity_day_agg FINAL
		WHERE vehicle_id = ? AND (events > 0 OR photos > 0)
		ORDER BY day`, vehicleID)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "read existing days")
	}
	defer rows.Close()
	days, err := store.Collect(rows, func(r store.Row) (time.Time, error) {
		var d time.Time
		return d, r.Scan(&d)
	})
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "scan existing days")
	}
	return days, nil
}

// Write batch inserts rows
func (s *CHSink) Write(ctx context.Context, rows []domain.DayAgg) error {
	if len(rows) == 0 {
		return nil
	}
	vals := make([][]any, len(rows))
	for i, r := range rows {
		vals[i] = []any{r.VehicleID, r.Day, r.Events, r.Photos, r.Hours, r.ValueUSD, r.Weight, r.BuiltAt}
	}
	if err := s.ch.Insert(ctx, Table, columns, vals); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "insert %d rows into %s", len(rows), Table)
	}
	return nil
}
