// Package dbx holds the small database plumbing shared by the client sqlite
// repositories and the server postgres repositories.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the query surface repositories are written against. Both *sql.DB
// and *sql.Tx implement it, so the same repository works standalone or
// inside a transaction started by WithTx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside a transaction on db. The transaction is committed
// when fn returns nil and rolled back when it returns an error or panics;
// a panic is re-raised after the rollback.
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	done := false
	defer func() {
		if !done {
			_ = tx.Rollback()
		}
	}()

	if err := fn(ctx, tx); err != nil {
		return err
	}

	done = true
	return tx.Commit()
}
