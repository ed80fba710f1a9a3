package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"servicedesk/db"
	"servicedesk/db/migrations"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// Open создает отдельную SQLite-базу во временном каталоге теста и прогоняет миграции.
func Open(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := db.Open(db.DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	_, err = migrations.Up(context.Background(), conn.DB, db.DriverSQLite)
	require.NoError(t, err)
	return conn
}

// NewStorage - Storage поверх Open
func NewStorage(t *testing.T) *db.Storage {
	t.Helper()
	return db.NewStorage(Open(t))
}
