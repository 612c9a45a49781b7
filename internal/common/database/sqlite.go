// internal/common/database/sqlite.go
package database

import (
	"context"
	"database/sql"
	"fmt"

	"shop-assistant/internal/common/config"

	_ "github.com/mattn/go-sqlite3" // registers "sqlite3"
)

// SQLiteClient wraps a file-backed SQLite database.
type SQLiteClient struct {
	DB *sql.DB
}

// NewSQLite opens the database at cfg.Path. ":memory:" is accepted.
func NewSQLite(cfg config.SQLiteConfig) (*SQLiteClient, error) {
	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", cfg.Path, err)
	}
	// a single writer keeps ":memory:" databases on one connection
	db.SetMaxOpenConns(1)

	return &SQLiteClient{DB: db}, nil
}

func (c *SQLiteClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

func (c *SQLiteClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
