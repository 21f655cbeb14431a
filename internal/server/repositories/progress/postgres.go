package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"letterpal/internal/common"
	"letterpal/internal/dbx"
	"letterpal/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, userID string, letterID int) (*models.Progress, error) {
	var p models.Progress
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, letter_id, stage, score, completed, updated_at
		FROM progress WHERE user_id = $1 AND letter_id = $2
	`, userID, letterID).
		Scan(&p.UserID, &p.LetterID, &p.Stage, &p.Score, &p.Completed, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return &p, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, p *models.Progress) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO progress (user_id, letter_id, stage, score, completed, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (user_id, letter_id) DO UPDATE
		SET stage = excluded.stage, score = excluded.score,
		    completed = excluded.completed, updated_at = now()
	`, p.UserID, p.LetterID, p.Stage, p.Score, p.Completed)
	if err != nil {
		return fmt.Errorf("failed to upsert progress: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Progress, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, letter_id, stage, score, completed, updated_at
		FROM progress WHERE user_id = $1
		ORDER BY letter_id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}
	defer rows.Close()

	var result []*models.Progress
	for rows.Next() {
		var p models.Progress
		if err := rows.Scan(&p.UserID, &p.LetterID, &p.Stage, &p.Score, &p.Completed, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan progress row: %w", err)
		}
		result = append(result, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate progress rows: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Totals(ctx context.Context, userID string) (int, int, error) {
	var stars, completed int
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(score), 0),
		       COUNT(*) FILTER (WHERE completed)
		FROM progress WHERE user_id = $1
	`, userID).Scan(&stars, &completed)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate progress: %w", err)
	}
	return stars, completed, nil
}
