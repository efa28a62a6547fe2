package repokit

import (
	"context"
	"fmt"
	"time"
)

// MustGuard runs g.Guard with a 5s default deadline and panics on failure. Use it at startup
func MustGuard(ctx context.Context, g interface{ Guard(context.Context) error }) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}
	if err := g.Guard(ctx); err != nil {
		panic(fmt.Errorf("dependency guard failed: %w", err))
	}
}
