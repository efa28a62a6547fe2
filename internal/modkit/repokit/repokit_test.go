package repokit

import (
	"context"
	"errors"
	"testing"
	"time"
)

type recordingQ struct{ sqls *[]string }

func (r recordingQ) Exec(_ context.Context, sql string, _ ...any) (CommandTag, error) {
	*r.sqls = append(*r.sqls, sql)
	return nil, nil
}
func (r recordingQ) Query(context.Context, string, ...any) (Rows, error) { return nil, nil }
func (r recordingQ) QueryRow(context.Context, string, ...any) Row         { return nil }
func (r recordingQ) Tx(ctx context.Context, fn func(Queryer) error) error {
	*r.sqls = append(*r.sqls, "BEGIN")
	return fn(r)
}

func TestBeginHooksRunFirst(t *testing.T) {
	var sqls []string
	db := WithBeginHooks(recordingQ{sqls: &sqls}, StatementTimeout(5*time.Second))
	err := WithTx(context.Background(), db, func(q Queryer) error {
		_, err := q.Exec(context.Background(), "UPDATE rollup_watermark SET built_at = now()")
		return err
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}
	want := []string{"BEGIN", "SET LOCAL statement_timeout = 5000", "UPDATE rollup_watermark SET built_at = now()"}
	if len(sqls) != len(want) {
		t.Fatalf("sqls = %v", sqls)
	}
	for i := range want {
		if sqls[i] != want[i] {
			t.Fatalf("sqls[%d] = %q, want %q", i, sqls[i], want[i])
		}
	}
}

type guardFunc func(context.Context) error

func (g guardFunc) Guard(ctx context.Context) error { return g(ctx) }

func TestMustGuard(t *testing.T) {
	MustGuard(context.Background(), guardFunc(func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Fatalf("expected a default deadline")
		}
		return nil
	}))
	defer func() {
		if recover() == nil {
			t.Fatalf("failing guard should panic")
		}
	}()
	MustGuard(context.Background(), guardFunc(func(context.Context) error { return errors.New("pg down") }))
}
