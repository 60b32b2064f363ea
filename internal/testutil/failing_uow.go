package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/zeabis/zeabis/internal/db"
)

// FailingUoW runs work in a real transaction but fails the first write whose
// SQL starts with Statement (e.g. "INSERT INTO user_roles"), returning Err.
// Reads are passed through. Writes counts every write attempted.
type FailingUoW struct {
	DB        *sql.DB
	Statement string
	Err       error
	Writes    atomic.Int32
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(ctx, &failingTx{DBTX: tx, uow: u}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type failingTx struct {
	db.DBTX
	uow *FailingUoW
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.uow.Writes.Add(1)
	if strings.HasPrefix(strings.TrimSpace(query), f.uow.Statement) {
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
