package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeabis/zeabis/internal/db"
)

func newRunner(t *testing.T) (*db.TxRunner, *sql.DB) {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewUnitOfWork(database), database
}

func insertCustomer(ctx context.Context, tx db.DBTX, id string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO customers (id, name, created_at, updated_at) VALUES (?, ?, 'x', 'x')`, id, "c-"+id)
	return err
}

func customerExists(t *testing.T, database *sql.DB, id string) bool {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM customers WHERE id = ?`, id).Scan(&n))
	return n == 1
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow, database := newRunner(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertCustomer(ctx, tx, "k1")
	})
	require.NoError(t, err)
	assert.True(t, customerExists(t, database, "k1"))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow, database := newRunner(t)
	failure := errors.New("deliberate failure")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertCustomer(ctx, tx, "k2"); err != nil {
			return err
		}
		return failure
	})
	require.ErrorIs(t, err, failure)
	assert.False(t, customerExists(t, database, "k2"))
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow, database := newRunner(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertCustomer(ctx, tx, "k3")
			panic("boom")
		})
	})
	assert.False(t, customerExists(t, database, "k3"))
}
