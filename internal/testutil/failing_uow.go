package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/triage/internal/db"
)

// FailOnNthExecUoW makes the FailOn-th write of a transaction return Err.
// Import and seed tests use it to stop a bulk write after some statuses,
// projects or tasks were inserted and then check that none of them remain.
// Only ExecContext calls are counted, from 1; reads pass through.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting store transaction: %w", err)
	}

	counted := &countingTx{DBTX: tx, failOn: u.FailOn, err: u.Err}
	if err := fn(ctx, counted); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type countingTx struct {
	db.DBTX
	writes atomic.Int32
	failOn int32
	err    error
}

func (c *countingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if c.writes.Add(1) == c.failOn {
		return nil, c.err
	}
	return c.DBTX.ExecContext(ctx, query, args...)
}
