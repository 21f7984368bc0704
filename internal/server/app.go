// Package server initializes and runs the notes backend. It wires the
// user store, the blob store and the HTTP engine, applies database
// migrations and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/labstack/echo/v4"
	"github.com/pressly/goose/v3"

	"github.com/nkorotkov/privateme/internal/logging"
	"github.com/nkorotkov/privateme/internal/server/blob"
	"github.com/nkorotkov/privateme/internal/server/config"
	"github.com/nkorotkov/privateme/internal/server/httpapi"
	"github.com/nkorotkov/privateme/internal/server/migrations"
	"github.com/nkorotkov/privateme/internal/server/users"
)

type App struct {
	config *config.Config
	logger logging.Logger
	engine *echo.Echo
	db     *sql.DB
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	var repo users.Repository
	var db *sql.DB
	if useMemoryBackend(c.DatabaseDSN) {
		logger.Warn(ctx, "no database DSN configured, using in-memory user store")
		repo = users.NewMemoryRepository()
	} else {
		var err error
		db, err = sql.Open("pgx", c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		if err := runMigrations(db); err != nil {
			return nil, fmt.Errorf("db migration error: %w", err)
		}
		repo = users.NewPostgresRepository(db)
	}

	var blobs blob.Store
	if useMemoryBackend(c.S3BaseEndpoint) {
		logger.Warn(ctx, "no object storage configured, using in-memory blob store")
		blobs = blob.NewMemoryStore()
	} else {
		s3Store, err := blob.NewS3Store(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("blob store init error: %w", err)
		}
		blobs = s3Store
	}

	engine := httpapi.EchoEngine(httpapi.IOC{
		Blobs:       blobs,
		Users:       users.NewService(repo, c),
		Logger:      logger,
		SigningKey:  []byte(c.SecretKey),
		Tokenexpiry: c.AccessTokenValidityDuration,
	})

	return &App{config: c, logger: logger, engine: engine, db: db}, nil
}

// useMemoryBackend reports whether a DSN or endpoint selects the
// in-process development backend. The "memory" sentinel is the way to
// ask for it through JSON config or flags (e.g. -d memory), since the
// defaults are non-empty.
func useMemoryBackend(value string) bool {
	return value == "" || value == "memory"
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, ".")
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting server...", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	go func() {
		if err := app.engine.Start(app.config.EndpointAddr); err != nil && err != http.ErrServerClosed {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := app.engine.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, err.Error())
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(shutdownCtx, err.Error())
		}
	}

	app.logger.Info(shutdownCtx, "Server stopped")
}
