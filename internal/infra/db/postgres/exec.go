package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain"
)

// queryExecutor is the subset of pgx surface shared by pool, conn and tx.
type queryExecutor interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

// executor resolves the `qx any` argument repositories accept: a pgx.Tx
// or *pgxpool.Conn when inside a transaction, the pool for NoTX. Any
// other handle gets an executor that fails every call with
// ErrInvalidExecContext, so a miswired caller surfaces at the first
// query instead of silently running outside its transaction.
func executor(pool *pgxpool.Pool, qx any) queryExecutor {
	switch v := qx.(type) {
	case nil:
		return pool
	case pgx.Tx:
		return v
	case *pgxpool.Conn:
		return v
	default:
		return errExecutor{err: fmt.Errorf("%w: %T", domain.ErrInvalidExecContext, qx)}
	}
}

func pickRow(ctx context.Context, pool *pgxpool.Pool, qx any, sql string, args ...any) pgx.Row {
	return executor(pool, qx).QueryRow(ctx, sql, args...)
}

type errExecutor struct{ err error }

func (e errExecutor) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return errRow{err: e.err}
}

func (e errExecutor) Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error) {
	return nil, e.err
}

func (e errExecutor) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return nil, e.err
}

type errRow struct{ err error }

func (r errRow) Scan(dest ...interface{}) error { return r.err }
