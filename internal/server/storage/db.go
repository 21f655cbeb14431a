// Package storage wires the server's PostgreSQL connection to the
// repositories and runs the embedded migrations.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"letterpal/internal/server/migrations"
	"letterpal/internal/server/repositories/checkins"
	"letterpal/internal/server/repositories/progress"
	"letterpal/internal/server/repositories/recordings"
	"letterpal/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Close() error
	Users() users.Repository
	Progress() progress.Repository
	Checkins() checkins.Repository
	Recordings() recordings.Repository
}

type PostgresRepositoryManager struct {
	db         *sql.DB
	users      users.Repository
	progress   progress.Repository
	checkins   checkins.Repository
	recordings recordings.Repository
}

func NewPostgresRepositoryManager(dsn string) (RepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	return &PostgresRepositoryManager{
		db:         db,
		users:      users.NewPostgresRepository(db),
		progress:   progress.NewPostgresRepository(db),
		checkins:   checkins.NewPostgresRepository(db),
		recordings: recordings.NewPostgresRepository(db),
	}, nil
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.UpContext(ctx, m.db, ".")
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) Progress() progress.Repository {
	return m.progress
}

func (m *PostgresRepositoryManager) Checkins() checkins.Repository {
	return m.checkins
}

func (m *PostgresRepositoryManager) Recordings() recordings.Repository {
	return m.recordings
}
