package repositories

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// recordingQuerier captures statements instead of talking to Postgres.
// QueryRow answers from queued first and falls back to row.
type recordingQuerier struct {
	sql     []string
	args    [][]any
	execErr error

	row    pgx.Row
	queued []pgx.Row

	rows     *fakeRows
	queryErr error
}

func (q *recordingQuerier) record(sql string, args []any) {
	q.sql = append(q.sql, sql)
	q.args = append(q.args, args)
}

func (q *recordingQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.record(sql, args)
	return pgconn.NewCommandTag("INSERT 0 1"), q.execErr
}

func (q *recordingQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.record(sql, args)
	if q.queryErr != nil {
		return nil, q.queryErr
	}
	if q.rows == nil {
		return &fakeRows{}, nil
	}
	return q.rows, nil
}

func (q *recordingQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.record(sql, args)
	if len(q.queued) > 0 {
		r := q.queued[0]
		q.queued = q.queued[1:]
		return r
	}
	return q.row
}

func assign(dest, values []any) error {
	if len(dest) != len(values) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(values))
	}
	for i, v := range values {
		reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(v))
	}
	return nil
}

// valuesRow is a single result row.
type valuesRow struct {
	values []any
	err    error
}

func row(values ...any) valuesRow { return valuesRow{values: values} }

func (r valuesRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(dest, r.values)
}

// fakeRows iterates a fixed result set.
type fakeRows struct {
	data   [][]any
	pos    int
	err    error
	closed bool
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.closed || r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error { return assign(dest, r.data[r.pos-1]) }

func (r *fakeRows) Values() ([]any, error) { return r.data[r.pos-1], nil }

// fakeTx runs statements against its own recordingQuerier. Methods the
// repositories never call fall through to the nil embedded pgx.Tx.
type fakeTx struct {
	pgx.Tx
	q          *recordingQuerier
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return t.q.Exec(ctx, sql, args...)
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return t.q.Query(ctx, sql, args...)
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return t.q.QueryRow(ctx, sql, args...)
}

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	t.rolledBack = true
	return nil
}

type fakeTxStarter struct {
	tx       *fakeTx
	beginErr error
	begins   int
}

func newFakeTxStarter(rows ...pgx.Row) *fakeTxStarter {
	return &fakeTxStarter{tx: &fakeTx{q: &recordingQuerier{queued: rows}}}
}

func (s *fakeTxStarter) Begin(context.Context) (pgx.Tx, error) {
	s.begins++
	if s.beginErr != nil {
		return nil, s.beginErr
	}
	return s.tx, nil
}
