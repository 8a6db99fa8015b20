package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed migrations
var migrationsFS embed.FS

func newProvider(conn *sql.DB, driver string) (*goose.Provider, error) {
	var dialect goose.Dialect
	switch driver {
	case DriverSQLite:
		dialect = goose.DialectSQLite3
	case DriverPostgres:
		dialect = goose.DialectPostgres
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	src, err := fs.Sub(migrationsFS, "migrations/"+driver)
	if err != nil {
		return nil, fmt.Errorf("migrate source: %w", err)
	}

	return goose.NewProvider(dialect, conn, src)
}

// Migrate applies all pending migrations. When drop is true every applied
// migration is rolled back first, leaving empty tables behind.
func Migrate(ctx context.Context, conn *sql.DB, driver string, drop bool) error {
	p, err := newProvider(conn, driver)
	if err != nil {
		return err
	}

	if drop {
		version, err := p.GetDBVersion(ctx)
		if err != nil {
			return fmt.Errorf("migrate version: %w", err)
		}
		if version > 0 {
			if _, err := p.DownTo(ctx, 0); err != nil {
				return fmt.Errorf("migrate down: %w", err)
			}
		}
	}

	if _, err := p.Up(ctx); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}
