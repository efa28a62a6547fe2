package domain

import (
	"context"
	"time"
)

// RunnerPort runs rollup passes
type RunnerPort interface {
	RunOnce(ctx context.Context) (PassStats, error)
}

// StorageRepo is the Postgres side: watermark bookkeeping and change detection
type StorageRepo interface {
	// Watermark returns the position every vehicle has been rebuilt through
	Watermark(ctx context.Context, name string) (Cursor, error)
	// ChangedSince lists up to limit vehicles sorting after the cursor, in (changed_at, vehicle_id) order
	ChangedSince(ctx context.Context, after Cursor, limit int) ([]Changed, error)
	// Finish records the pass outcome and advances the watermark
	Finish(ctx context.Context, name string, info FinishInfo) error
}

// Sink is the ClickHouse side
type Sink interface {
	EnsureTable(ctx context.Context) error
	ExistingDays(ctx context.Context, vehicleID string) ([]time.Time, error)
	Write(ctx context.Context, rows []DayAgg) error
}
