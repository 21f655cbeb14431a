// Package progress provides persistence for per-letter learning progress.
package progress

import (
	"context"

	"letterpal/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context, userID string, letterID int) (*models.Progress, error)
	Upsert(ctx context.Context, p *models.Progress) error
	ListByUser(ctx context.Context, userID string) ([]*models.Progress, error)
	// Totals returns the star sum and completed-letter count for the user.
	Totals(ctx context.Context, userID string) (stars int, completed int, err error)
}
