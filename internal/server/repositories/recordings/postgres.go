package recordings

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"letterpal/internal/dbx"
	"letterpal/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, rec *models.Recording) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO recordings (id, user_id, letter, path, score)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, rec.ID, rec.UserID, rec.Letter, rec.Path, rec.Score).Scan(&rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create recording: %w", err)
	}
	return nil
}
