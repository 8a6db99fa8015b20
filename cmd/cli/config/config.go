package config

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/crucial707/watchlist/internal/config"
	"github.com/crucial707/watchlist/internal/db"
)

// Store is an open database plus the driver it was opened with.
type Store struct {
	DB     *sql.DB
	Driver string
}

// Open loads the server configuration and connects to its database.
// Migrations are left to the caller.
func Open(ctx context.Context) (*Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	conn, err := db.Connect(ctx, cfg.DBDriver, cfg.DSN(), cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.DBDriver, err)
	}
	return &Store{DB: conn, Driver: cfg.DBDriver}, nil
}

// Migrate brings the schema up to date, rolling everything back first when drop is set.
func (s *Store) Migrate(ctx context.Context, drop bool) error {
	return db.Migrate(ctx, s.DB, s.Driver, drop)
}

func (s *Store) Close() error {
	return s.DB.Close()
}
