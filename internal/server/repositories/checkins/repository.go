// Package checkins provides persistence for daily check-in records.
package checkins

import (
	"context"

	"letterpal/internal/server/models"
)

type Repository interface {
	// Record inserts the check-in row for (userID, date) or, when it already
	// exists, increments its letters_learned counter. Returns the resulting row.
	Record(ctx context.Context, userID, date string) (*models.Checkin, error)
	// ListByUser returns the user's check-ins, newest first, at most limit
	// rows (0 means no limit).
	ListByUser(ctx context.Context, userID string, limit int) ([]*models.Checkin, error)
}
