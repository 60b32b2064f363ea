package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	dsn := DSN("/tmp/zeabis.db")
	assert.True(t, strings.HasPrefix(dsn, "/tmp/zeabis.db?"))
	assert.Equal(t, len(connPragmas), strings.Count(dsn, "_pragma="))
}

func TestOpenDB_PragmasOnEveryConnection(t *testing.T) {
	db, err := OpenDB(filepath.Join(t.TempDir(), "zeabis.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	// Hold both at once so the pool has to open a second connection.
	conns := make([]*sql.Conn, 2)
	for i := range conns {
		conns[i], err = db.Conn(ctx)
		require.NoError(t, err)
		defer conns[i].Close()
	}

	for i, c := range conns {
		var fk, timeout int
		var mode string
		require.NoError(t, c.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fk))
		require.NoError(t, c.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&timeout))
		require.NoError(t, c.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode))
		assert.Equal(t, 1, fk, "conn %d foreign_keys", i)
		assert.Equal(t, 5000, timeout, "conn %d busy_timeout", i)
		assert.Equal(t, "wal", strings.ToLower(mode), "conn %d journal_mode", i)
	}

	_, err = conns[1].ExecContext(ctx, `INSERT INTO projects (id, name, customer_id, created_at, updated_at)
		VALUES ('p1', 'Orphan', 'missing', 'x', 'x')`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FOREIGN KEY")
}
