package db

import (
	"context"
	"database/sql"
)

// DBTX is the query surface the repositories need. Both the pooled *sql.DB
// and a *sql.Tx satisfy it, so the same repo code runs inside or outside an
// import transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
