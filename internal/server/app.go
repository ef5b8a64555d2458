// Package server wires configuration, the database, object storage and the
// HTTP API together and runs the API server until it is told to stop.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/docfolders/internal/logging"
	"github.com/dmitrijs2005/docfolders/internal/server/config"
	"github.com/dmitrijs2005/docfolders/internal/server/httpapi"
	"github.com/dmitrijs2005/docfolders/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/docfolders/internal/server/services"
	"github.com/dmitrijs2005/docfolders/internal/server/storage"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	handler http.Handler
}

// NewApp connects to the database, applies migrations and builds the HTTP
// handler.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	db, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	store, err := newBlobStore(ctx, c)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return newApp(c, db, rm, store, logger), nil
}

func newApp(c *config.Config, db *sql.DB, rm repomanager.RepositoryManager, store storage.BlobStore, logger logging.Logger) *App {
	api := httpapi.NewServer(httpapi.Options{
		Files:       services.NewFileService(db, rm, store, logger),
		Folders:     services.NewFolderService(db, rm, store, logger),
		JWTSecret:   []byte(c.JWTSecret),
		CORSOrigins: c.CORSOrigins,
		Health:      db.PingContext,
		Logger:      logger,
	})
	return &App{config: c, logger: logger, db: db, handler: api.Handler()}
}

func newBlobStore(ctx context.Context, c *config.Config) (storage.BlobStore, error) {
	if !c.StorageEnabled() {
		return storage.NopStore{}, nil
	}
	s, err := storage.NewS3Store(ctx, storage.S3Options{
		AccessKey:    c.S3AccessKey,
		SecretKey:    c.S3SecretKey,
		Bucket:       c.S3Bucket,
		Region:       c.S3Region,
		BaseEndpoint: c.S3BaseEndpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}
	return s, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled or a signal arrives, then shuts down
// gracefully and closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	app.initSignalHandler(cancelFunc)

	defer func() {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}()

	ln, err := net.Listen("tcp", app.config.HTTPAddr)
	if err != nil {
		return err
	}
	return app.serve(ctx, ln)
}

func (app *App) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           app.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.logger.Info(gctx, "Starting HTTP server", "address", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		app.logger.Info(gctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
