// Package repokit is the repo side of modkit: store aliases, binders and tx helpers
package repokit

import (
	"context"

	"activitycal/internal/platform/store"
)

type (
	// Queryer is the sql surface repos bind to
	Queryer = store.RowQuerier
	// TxRunner is a Queryer that can open transactions
	TxRunner = store.TxRunner
	// Rows is an open result set
	Rows = store.Rows
	// Row is a single row
	Row = store.Row
	// CommandTag reports a write result
	CommandTag = store.CommandTag
)

// WithTx runs fn in a transaction on tx
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}
