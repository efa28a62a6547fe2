// Package ch is the ClickHouse client used for the day aggregate sink
package ch

import (
	"context"
	"errors"
	"strings"

	"activitycal/internal/core/version"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Config configures the connection. URL is a clickhouse:// DSN
type Config struct {
	URL  string
	Role string
}

// CH wraps a native protocol connection
type CH struct {
	conn driver.Conn
}

// Open parses the DSN, tags the client info with role and build, and connects lazily
func Open(_ context.Context, cfg Config) (*CH, error) {
	opts, err := clickhouse.ParseDSN(cfg.URL)
	if err != nil {
		return nil, err
	}
	opts.ClientInfo = BuildClientInfo(cfg.Role, version.Version)
	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, err
	}
	return &CH{conn: conn}, nil
}

// New wraps an existing connection
func New(conn driver.Conn) *CH { return &CH{conn: conn} }

// Ping checks the server is reachable
func (c *CH) Ping(ctx context.Context) error { return c.conn.Ping(ctx) }

// Exec runs a statement without results, e.g. DDL
func (c *CH) Exec(ctx context.Context, sql string, args ...any) error {
	return c.conn.Exec(ctx, sql, args...)
}

// Query runs a read
func (c *CH) Query(ctx context.Context, sql string, args ...any) (driver.Rows, error) {
	return c.conn.Query(ctx, sql, args...)
}

// Insert sends rows as one native batch. Each row holds values in columns order
func (c *CH) Insert(ctx context.Context, table string, columns []string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	q, err := InsertSQL(table, columns)
	if err != nil {
		return err
	}
	b, err := c.conn.PrepareBatch(ctx, q)
	if err != nil {
		return err
	}
	for _, r := range rows {
		if err := b.Append(r...); err != nil {
			_ = b.Abort()
			return err
		}
	}
	return b.Send()
}

// Close closes the connection
func (c *CH) Close() error { return c.conn.Close() }

// InsertSQL builds the batch prefix "INSERT INTO t (a, b)"
func InsertSQL(table string, columns []string) (string, error) {
	table = strings.TrimSpace(table)
	if table == "" || strings.ContainsAny(table, " ;") {
		return "", errors.New("ch: invalid table name")
	}
	if len(columns) == 0 {
		return "INSERT INTO " + table, nil
	}
	return "INSERT INTO " + table + " (" + strings.Join(columns, ", ") + ")", nil
}
