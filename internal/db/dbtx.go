package db

import (
	"context"
	"database/sql"
)

// DBTX is what the SQLite repositories run their statements against. A
// plain *sql.DB serves the CLI's single-record commands; a *sql.Tx handed
// out by WithinTx lets an import or a status seed write every record or
// none.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
