// Package repo holds the rollup storage: the Postgres watermark and the ClickHouse sink
package repo

import (
	"context"
	_ "embed"

	"activitycal/internal/modkit/repokit"
	perr "activitycal/internal/platform/errors"
	"activitycal/internal/platform/store"
	"activitycal/internal/services/rollup/domain"
)

// Schema creates the watermark table
//
//go:embed schema.sql
var Schema string

type (
	pgRepo   struct{ q repokit.Queryer }
	pgBinder struct{}
)

// NewPG returns the Postgres binder
func NewPG() repokit.Binder[domain.StorageRepo] { return pgBinder{} }

func (pgBinder) Bind(q repokit.Queryer) domain.StorageRepo { return &pgRepo{q: q} }

// Watermark returns the built through cursor, creating the row at the epoch on first use
func (r *pgRepo) Watermark(ctx context.Context, name string) (domain.Cursor, error) {
	c, err := store.One(ctx, r.q, func(row store.Row) (domain.Cursor, error) {
		var c domain.Cursor
		err := row.Scan(&c.At, &c.VehicleID)
		c.At = c.At.UTC()
		return c, err
	}, `
		INSERT INTO rollup_watermark (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING built_through, built_through_vehicle`, name)
	if err != nil {
		return domain.Cursor{}, perr.FromPG(err, "read watermark")
	}
	return c, nil
}

// rows at the cursor instant are read too, the keyset HAVING drops the vehicles already done
const changedSQL = `
SELECT vehicle_id, max(changed_at) AS changed_at
FROM (
    SELECT id AS vehicle_id, updated_at AS changed_at FROM vehicles WHERE updated_at >= $1
    UNION ALL SELECT vehicle_id, updated_at FROM timeline_events WHERE updated_at >= $1
    UNION ALL SELECT vehicle_id, updated_at FROM auctions WHERE updated_at >= $1
    UNION ALL SELECT a.vehicle_id, c.created_at FROM auction_comments c JOIN auctions a ON a.id = c.auction_id WHERE c.created_at >= $1
    UNION ALL SELECT vehicle_id, created_at FROM vehicle_images WHERE created_at >= $1
    UNION ALL SELECT vehicle_id, updated_at FROM auction_listings WHERE updated_at >= $1
    UNION ALL SELECT vehicle_id, updated_at FROM invoices WHERE updated_at >= $1
) c
GROUP BY vehicle_id
HAVING (max(changed_at), vehicle_id) > ($1::timestamptz, $2::text)
ORDER BY changed_at, vehicle_id
LIMIT $3`

func (r *pgRepo) ChangedSince(ctx context.Context, after domain.Cursor, limit int) ([]domain.Changed, error) {
	out, err := store.Many(ctx, r.q, func(row store.Row) (domain.Changed, error) {
		var c domain.Changed
		err := row.Scan(&c.VehicleID, &c.ChangedAt)
		c.ChangedAt = c.ChangedAt.UTC()
		return c, err
	}, changedSQL, after.At.UTC(), after.VehicleID, limit)
	return out, perr.FromPG(err, "list changed vehicles")
}

// Finish never moves the watermark backwards and always clears the lease
func (r *pgRepo) Finish(ctx context.Context, name string, info domain.FinishInfo) error {
	_, err := r.q.Exec(ctx, `
		UPDATE rollup_watermark
		   SET built_through = CASE WHEN ($2::timestamptz, $3::text) > (built_through, built_through_vehicle)
		                            THEN $2 ELSE built_through END,
		       built_through_vehicle = CASE WHEN ($2::timestamptz, $3::text) > (built_through, built_through_vehicle)
		                                    THEN $3 ELSE built_through_vehicle END,
		       last_run_at = now(), last_status = $4, last_vehicles = $5, last_rows = $6,
		       last_error = nullif($7, ''),
		       lease_owner = NULL, lease_claimed_at = NULL, lease_expires_at = NULL
		 WHERE name = $1`,
		name, info.BuiltThrough.At.UTC(), info.BuiltThrough.VehicleID, info.Status, info.Vehicles, info.Rows, info.ErrText)
	return perr.FromPG(err, "finish rollup pass")
}
