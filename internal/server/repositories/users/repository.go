// Package users provides persistence for user accounts.
package users

import (
	"context"

	"letterpal/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByNickname(ctx context.Context, nickname string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
