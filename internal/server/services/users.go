// Package services contains server-side business logic. This file implements
// UserService: registration, credential checks, and issuing access tokens.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"letterpal/internal/common"
	"letterpal/internal/server/auth"
	"letterpal/internal/server/config"
	"letterpal/internal/server/models"
	"letterpal/internal/server/repositories/users"
)

type UserService struct {
	repo                        users.Repository
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using the repository and server config.
func NewUserService(repo users.Repository, cfg *config.Config) *UserService {
	return &UserService{
		repo:                        repo,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register creates a new user with the given nickname and password. A
// duplicate nickname yields common.ErrNicknameTaken.
func (s *UserService) Register(ctx context.Context, nickname, password string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{Nickname: nickname, HashedPassword: hash}
	u, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrNicknameTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies the credentials and, on success, returns a fresh access
// token. Unknown nicknames and wrong passwords are indistinguishable to the
// caller: both yield common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, nickname, password string) (string, error) {
	user, err := s.repo.GetByNickname(ctx, nickname)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrInvalidCredentials
		}
		return "", common.ErrorInternal
	}

	if !auth.CheckPassword(user.HashedPassword, password) {
		return "", common.ErrInvalidCredentials
	}

	return auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
}

// GetByID returns the user profile for an authenticated request.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}
