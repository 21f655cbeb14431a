// Package recordings provides persistence for stored pronunciation
// recordings.
package recordings

import (
	"context"

	"letterpal/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, rec *models.Recording) error
}
