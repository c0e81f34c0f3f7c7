package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/triage/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailOnNthExecUoW_RollsBackEarlierWrites(t *testing.T) {
	database := NewTestDB(t)
	errDisk := errors.New("disk full")
	uow := &FailOnNthExecUoW{DB: database, FailOn: 2, Err: errDisk}

	const insert = `INSERT INTO project_statuses (id, name, created_at, updated_at)
		VALUES (?, ?, '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		for i, name := range []string{"Ambiente", "POC", "MVP"} {
			if _, err := tx.ExecContext(ctx, insert, name, name); err != nil {
				return err
			}
			// Reads are not counted.
			var n int
			require.NoError(t, tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM project_statuses`).Scan(&n))
			assert.Equal(t, i+1, n)
		}
		return nil
	})
	assert.ErrorIs(t, err, errDisk)

	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM project_statuses`).Scan(&n))
	assert.Zero(t, n, "the status written before the failure is rolled back")
}

func TestFailOnNthExecUoW_CommitsWhenNotReached(t *testing.T) {
	database := NewTestDB(t)
	uow := &FailOnNthExecUoW{DB: database, FailOn: 5, Err: errors.New("unused")}

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO project_statuses (id, name, created_at, updated_at)
			VALUES ('s1', 'Testes', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
		return err
	})
	require.NoError(t, err)

	var name string
	require.NoError(t, database.QueryRow(`SELECT name FROM project_statuses WHERE id = 's1'`).Scan(&name))
	assert.Equal(t, "Testes", name)
}
