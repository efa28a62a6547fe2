// Package guardrails keeps rollup passes from overlapping across processes
package guardrails

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"activitycal/internal/modkit/repokit"
	perr "activitycal/internal/platform/errors"
)

// ErrLeaseHeld signals another process is running the pass
var ErrLeaseHeld = errors.New("rollup: lease already held")

// Lease runs do while holding the named watermark lease
type Lease func(ctx context.Context, name string, do func(context.Context) error) error

// MakeLease claims the lease columns of rollup_watermark. An expired lease is reclaimed,
// so a crashed pass blocks others for at most ttl
func MakeLease(db repokit.TxRunner, owner string, ttl time.Duration) Lease {
	owner = fmt.Sprintf("%s:%d", owner, os.Getpid())
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	interval := fmt.Sprintf("%d seconds", int64(ttl/time.Second))

	return func(ctx context.Context, name string, do func(context.Context) error) error {
		var claimed bool
		err := db.Tx(ctx, func(q repokit.Queryer) error {
			if _, err := q.Exec(ctx, `INSERT INTO rollup_watermark (name) VALUES ($1) ON CONFLICT DO NOTHING`, name); err != nil {
				return err
			}
			tag, err := q.Exec(ctx, `
				UPDATE rollup_watermark
				   SET lease_owner = $2, lease_claimed_at = now(), lease_expires_at = now() + ($3)::interval
				 WHERE name = $1
				   AND (lease_owner IS NULL OR lease_expires_at <= now())`, name, owner, interval)
			if err != nil {
				return err
			}
			claimed = tag.RowsAffected() == 1
			return nil
		})
		if err != nil {
			return perr.FromPG(err, "claim rollup lease")
		}
		if !claimed {
			return ErrLeaseHeld
		}
		return do(ctx)
	}
}
