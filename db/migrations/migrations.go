package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"servicedesk/db"

	"github.com/pressly/goose/v3"
)

// SQL-миграции лежат в отдельном каталоге на каждый диалект
//
//go:embed postgres/*.sql sqlite/*.sql
var embedded embed.FS

// NewProvider собирает goose-провайдер для драйвера из db.Open
func NewProvider(conn *sql.DB, driver string) (*goose.Provider, error) {
	var (
		dialect goose.Dialect
		dir     string
	)
	switch driver {
	case db.DriverPostgres:
		dialect, dir = goose.DialectPostgres, "postgres"
	case db.DriverSQLite:
		dialect, dir = goose.DialectSQLite3, "sqlite"
	default:
		return nil, fmt.Errorf("no migrations for driver %q", driver)
	}

	fsys, err := fs.Sub(embedded, dir)
	if err != nil {
		return nil, err
	}
	return goose.NewProvider(dialect, conn, fsys)
}

// Up применяет все новые миграции и возвращает примененные версии
func Up(ctx context.Context, conn *sql.DB, driver string) ([]int64, error) {
	p, err := NewProvider(conn, driver)
	if err != nil {
		return nil, err
	}
	results, err := p.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	versions := make([]int64, 0, len(results))
	for _, r := range results {
		versions = append(versions, r.Source.Version)
	}
	return versions, nil
}

// Down откатывает последнюю миграцию
func Down(ctx context.Context, conn *sql.DB, driver string) (int64, error) {
	p, err := NewProvider(conn, driver)
	if err != nil {
		return 0, err
	}
	r, err := p.Down(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to roll back migration: %w", err)
	}
	return r.Source.Version, nil
}

// Status отдает состояние каждой известной миграции
func Status(ctx context.Context, conn *sql.DB, driver string) ([]*goose.MigrationStatus, error) {
	p, err := NewProvider(conn, driver)
	if err != nil {
		return nil, err
	}
	return p.Status(ctx)
}
