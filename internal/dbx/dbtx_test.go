package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:dbxtest?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(2)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS notes (id INTEGER PRIMARY KEY, body TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`DELETE FROM notes`)
	require.NoError(t, err)
	return db
}

func noteCount(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM notes`).Scan(&n))
	return n
}

func TestWithTx_Commit(t *testing.T) {
	db := newTestDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO notes(body) VALUES ('a')`); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO notes(body) VALUES ('b')`)
		return err
	})
	require.NoError(t, err)
	require.Equal(t, 2, noteCount(t, db))
}

func TestWithTx_RollbackOnError(t *testing.T) {
	db := newTestDB(t)

	wantErr := errors.New("nope")
	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		_, e := tx.ExecContext(ctx, `INSERT INTO notes(body) VALUES ('gone')`)
		require.NoError(t, e)
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)
	require.Equal(t, 0, noteCount(t, db))
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	db := newTestDB(t)

	defer func() {
		require.NotNil(t, recover(), "panic should propagate out of WithTx")
		require.Equal(t, 0, noteCount(t, db))
	}()

	_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		_, e := tx.ExecContext(ctx, `INSERT INTO notes(body) VALUES ('gone')`)
		require.NoError(t, e)
		panic("boom")
	})
}

func TestWithTx_BeginFails(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Close())

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		return nil
	})
	require.Error(t, err)
}
