package domain

import (
	"context"
	"time"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Index(ctx context.Context, in IndexInput) (IndexResp, error)
	Grid(ctx context.Context, in GridInput) (GridResp, error)
	Day(ctx context.Context, in DayInput) (DayResp, error)
	AuctionsICS(ctx context.Context, vehicleID string) ([]byte, error)
}

// Loader fetches and indexes one vehicle. The rollup job consumes it
type Loader interface {
	Snapshot(ctx context.Context, vehicleID string, now time.Time) (Snapshot, error)
}
