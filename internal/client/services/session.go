// Package services contains application services for the letterpal client.
// This file defines the session service: login, registration, logout,
// restoring identity from the local store, and reacting to authorization
// failures reported by the transport.
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"letterpal/internal/client/api"
	"letterpal/internal/client/models"
	"letterpal/internal/client/repositories/kv"
	"letterpal/internal/common"
	"letterpal/internal/dbx"
	"letterpal/internal/logging"
)

// SessionService owns the authenticated identity: the bearer token and the
// current user profile. All mutation goes through its methods; the kv store
// receives a write-through on every change.
//
// Contract:
//   - Login: acquire a token, then fetch the profile strictly afterwards.
//   - Register: create the account, then Login with the same credentials.
//   - Logout: clear memory and durable state; always succeeds, idempotent.
//   - Restore: repopulate identity from the local store without the network;
//     a corrupt snapshot forces a full logout, never a partial state.
type SessionService struct {
	client api.Client
	db     *sql.DB
	store  kv.Repository
	log    logging.Logger

	token     string
	user      *models.User
	onExpired func()
}

// NewSessionService constructs a SessionService bound to the given API client
// and local DB, and registers its teardown handler with the transport, so
// that any 401 on a non-login call clears the session.
func NewSessionService(client api.Client, db *sql.DB, log logging.Logger) *SessionService {
	s := &SessionService{client: client, db: db, store: kv.NewSQLiteRepository(db), log: log}
	client.OnUnauthorized(s.expire)
	return s
}

// IsLoggedIn reports whether a token is currently held in memory.
func (s *SessionService) IsLoggedIn() bool {
	return s.token != ""
}

// User returns the current user profile, or nil when none is loaded.
func (s *SessionService) User() *models.User {
	return s.user
}

// OnSessionExpired registers the handler invoked after a reactive teardown,
// so the caller can return the user to the login screen. Replaces any
// previously registered handler.
func (s *SessionService) OnSessionExpired(fn func()) {
	s.onExpired = fn
}

// Login authenticates against the backend. On success the token is stored in
// memory and in the durable store, and the user profile is fetched and stored
// the same way. The profile fetch is sequenced strictly after token
// acquisition. A rejection surfaces common.ErrInvalidCredentials and leaves
// any previous session untouched.
func (s *SessionService) Login(ctx context.Context, nickname, password string) (*models.User, error) {
	token, err := s.client.Login(ctx, nickname, password)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	s.token = token
	if err := s.store.Set(ctx, kv.KeyToken, token); err != nil {
		s.log.Warn(ctx, "failed to persist token", "error", err)
	}

	user, err := s.client.Me(ctx)
	if err != nil {
		// Token is valid; a profile-less session is a legal transient state.
		return nil, fmt.Errorf("profile fetch error: %w", err)
	}
	s.setUser(ctx, user)

	return user, nil
}

// Register creates a new account and immediately logs in with the same
// credentials; registration by itself does not establish a session.
// A duplicate nickname surfaces common.ErrNicknameTaken.
func (s *SessionService) Register(ctx context.Context, nickname, password string) (*models.User, error) {
	if err := s.client.Register(ctx, nickname, password); err != nil {
		return nil, fmt.Errorf("registration error: %w", err)
	}
	return s.Login(ctx, nickname, password)
}

// Logout clears the in-memory identity and removes both token and user from
// the durable store. Deletion failures are logged and swallowed; Logout is
// idempotent and never fails.
func (s *SessionService) Logout(ctx context.Context) {
	s.token = ""
	s.user = nil
	s.client.SetToken("")

	// Both keys go in one transaction so no half-cleared identity survives.
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, kv.KeyToken); err != nil {
			return err
		}
		return repo.Delete(ctx, kv.KeyUser)
	})
	if err != nil {
		s.log.Warn(ctx, "failed to delete stored session", "error", err)
	}
}

// Restore repopulates the session from the durable store without contacting
// the backend. A stored user snapshot that fails to parse is treated as
// corrupt state: the whole session is logged out so no partially populated
// identity survives.
func (s *SessionService) Restore(ctx context.Context) error {
	token, ok, err := s.store.Get(ctx, kv.KeyToken)
	if err != nil {
		return fmt.Errorf("failed to read stored token: %w", err)
	}
	if ok && token != "" {
		s.token = token
		s.client.SetToken(token)
	}

	raw, ok, err := s.store.Get(ctx, kv.KeyUser)
	if err != nil {
		return fmt.Errorf("failed to read stored user: %w", err)
	}
	if !ok {
		return nil
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.log.Warn(ctx, "stored user snapshot is corrupt, logging out",
			"error", fmt.Errorf("%w: %v", common.ErrCorruptState, err))
		s.Logout(ctx)
		return nil
	}
	s.user = &user

	return nil
}

func (s *SessionService) setUser(ctx context.Context, user *models.User) {
	s.user = user

	raw, err := json.Marshal(user)
	if err != nil {
		s.log.Warn(ctx, "failed to serialize user", "error", err)
		return
	}
	if err := s.store.Set(ctx, kv.KeyUser, string(raw)); err != nil {
		s.log.Warn(ctx, "failed to persist user", "error", err)
	}
}

// expire is the reactive teardown path: the transport reports that an
// authenticated call was rejected. The session is cleared exactly as in
// Logout, then the redirect handler runs.
func (s *SessionService) expire() {
	ctx := context.Background()
	s.log.Warn(ctx, "authorization rejected, clearing session")
	s.Logout(ctx)
	if s.onExpired != nil {
		s.onExpired()
	}
}
