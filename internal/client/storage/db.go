// Package storage opens the client's local sqlite database and applies
// schema migrations on startup.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"letterpal/internal/client/storage/migrations"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// RunMigrations applies all pending migrations from the embedded FS.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if necessary) the local database at dsn and brings its
// schema up to date.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
