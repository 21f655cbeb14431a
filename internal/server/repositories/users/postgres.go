package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"letterpal/internal/common"
	"letterpal/internal/dbx"
	"letterpal/internal/server/models"
)

// uniqueViolation is the postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (id, nickname, avatar, hashed_password)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, user.ID, user.Nickname, user.Avatar, user.HashedPassword).Scan(&user.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrNicknameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) GetByNickname(ctx context.Context, nickname string) (*models.User, error) {
	return r.getOne(ctx, `
		SELECT id, nickname, COALESCE(avatar, ''), hashed_password, created_at
		FROM users WHERE nickname = $1
	`, nickname)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, `
		SELECT id, nickname, COALESCE(avatar, ''), hashed_password, created_at
		FROM users WHERE id = $1
	`, id)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.Nickname, &user.Avatar, &user.HashedPassword, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}
