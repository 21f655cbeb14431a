package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"letterpal/internal/client/api"
	"letterpal/internal/client/config"
	"letterpal/internal/client/repositories/kv"
	"letterpal/internal/client/services"
	"letterpal/internal/client/storage"
	"letterpal/internal/logging"
)

type App struct {
	config  *config.Config
	session *services.SessionService
	ledger  *services.LedgerService
	speech  *services.SpeechService
	reader  *bufio.Reader
	logger  logging.Logger
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	store := kv.NewSQLiteRepository(db)
	apiClient := api.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout)

	session := services.NewSessionService(apiClient, db, logger)
	ledger := services.NewLedgerService(apiClient, store, session, logger)
	speech := services.NewSpeechService(apiClient, logger)

	if err := session.Restore(ctx); err != nil {
		logger.Warn(ctx, "session restore failed", "error", err)
	}
	if err := ledger.Load(ctx); err != nil {
		logger.Warn(ctx, "ledger load failed", "error", err)
	}

	app := &App{
		config:  c,
		session: session,
		ledger:  ledger,
		speech:  speech,
		reader:  bufio.NewReader(os.Stdin),
		logger:  logger,
	}

	session.OnSessionExpired(func() {
		printlnFn("Your session has expired. Please log in again.")
	})

	return app, nil
}

func (a *App) isLoggedIn() bool {
	return a.session.IsLoggedIn()
}

func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to letterpal (type 'help' for commands)")
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

// status is the prompt decoration: the nickname when a session is active.
func (a *App) status() string {
	if u := a.session.User(); u != nil {
		return u.Nickname
	}
	if a.session.IsLoggedIn() {
		return "signed-in"
	}
	return "guest"
}
