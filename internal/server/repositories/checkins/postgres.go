package checkins

import (
	"context"
	"fmt"

	"letterpal/internal/dbx"
	"letterpal/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Record(ctx context.Context, userID, date string) (*models.Checkin, error) {
	var c models.Checkin
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO checkins (user_id, date, letters_learned)
		VALUES ($1, $2, 1)
		ON CONFLICT (user_id, date) DO UPDATE
		SET letters_learned = checkins.letters_learned + 1
		RETURNING user_id, date, letters_learned, created_at
	`, userID, date).
		Scan(&c.UserID, &c.Date, &c.LettersLearned, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to record checkin: %w", err)
	}
	return &c, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*models.Checkin, error) {
	query := `
		SELECT user_id, date, letters_learned, created_at
		FROM checkins WHERE user_id = $1
		ORDER BY date DESC
	`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkins: %w", err)
	}
	defer rows.Close()

	var result []*models.Checkin
	for rows.Next() {
		var c models.Checkin
		if err := rows.Scan(&c.UserID, &c.Date, &c.LettersLearned, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan checkin row: %w", err)
		}
		result = append(result, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate checkin rows: %w", err)
	}

	return result, nil
}
