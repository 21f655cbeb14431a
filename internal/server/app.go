// Package server initializes and runs the letterpal API server. It opens
// the database, runs migrations, wires the services and the HTTP router,
// and handles graceful shutdown on SIGINT/SIGTERM.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"letterpal/internal/filex"
	"letterpal/internal/logging"
	"letterpal/internal/server/config"
	"letterpal/internal/server/httpapi"
	"letterpal/internal/server/services"
	"letterpal/internal/server/storage"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config *config.Config
	logger *logging.ZapLogger
	repos  storage.RepositoryManager
	server *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	zl, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}
	logger := logging.NewZapLogger(zl)

	repos, err := storage.NewPostgresRepositoryManager(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if _, err := filex.EnsureDir(cfg.RecordingsDir); err != nil {
		return nil, fmt.Errorf("recordings dir error: %w", err)
	}

	us := services.NewUserService(repos.Users(), cfg)
	ps := services.NewProgressService(repos.Progress(), repos.Checkins())
	rs := services.NewRecordingService(repos.Recordings(), cfg.RecordingsDir)

	srv := httpapi.NewServer(us, ps, rs, []byte(cfg.SecretKey), logger)

	return &App{config: cfg, logger: logger, repos: repos, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	defer app.logger.Sync()

	app.initSignalHandler(cancelFunc)

	if err := app.repos.RunMigrations(ctx); err != nil {
		return fmt.Errorf("migrations error: %w", err)
	}
	defer app.repos.Close()

	httpServer := &http.Server{
		Addr:    app.config.BindAddr,
		Handler: app.server.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "starting http server", "addr", app.config.BindAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	return nil
}
