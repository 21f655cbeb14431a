package api

import (
	"context"
	"io"

	"letterpal/internal/client/models"
)

// Client is the transport-facing surface of the learning backend. It carries
// the bearer token on every authenticated request and reports authorization
// failures through the handler registered with OnUnauthorized.
type Client interface {
	Close() error

	Register(ctx context.Context, nickname, password string) error
	Login(ctx context.Context, nickname, password string) (string, error)
	Me(ctx context.Context) (*models.User, error)

	UpdateProgress(ctx context.Context, letterID, stage, score int) error
	Checkin(ctx context.Context) error
	Progress(ctx context.Context) ([]models.RemoteProgress, error)
	Checkins(ctx context.Context) ([]models.CheckinRecord, error)
	Stats(ctx context.Context) (*models.Stats, error)

	EvaluateSpeech(ctx context.Context, letter string, audio io.Reader, filename string) (*models.SpeechEvaluation, error)
	SaveRecording(ctx context.Context, letter string, audio io.Reader, filename string, score int) error

	// SetToken installs the bearer token attached to subsequent requests.
	// An empty string clears it.
	SetToken(token string)

	// OnUnauthorized registers the handler invoked when any non-login request
	// is rejected with 401. A 401 on the login call itself never triggers it.
	OnUnauthorized(fn func())
}
