// campus-api serves the Student Management and IT Asset Inventory APIs
// together with their web frontend.
//
// Startup:
//  1. Load configuration (defaults, optional YAML file, environment)
//  2. Initialise the logger
//  3. Open the database and apply migrations
//  4. Register the HTTP routes
//  5. Serve until SIGINT or SIGTERM, then drain requests and close the store
//
// Running:
//
//	DB_DRIVER=sqlite go run ./cmd/campus-api
//	go run ./cmd/campus-api --config=config/local.yaml
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanand-mishra/campus-api/internal/config"
	"github.com/aanand-mishra/campus-api/internal/http/server"
	"github.com/aanand-mishra/campus-api/internal/logger"
	"github.com/aanand-mishra/campus-api/internal/metrics"
	"github.com/aanand-mishra/campus-api/internal/storage/database"
	"github.com/aanand-mishra/campus-api/internal/upload"
)

const version = "1.0.0"

func main() {
	started := time.Now()

	cfg := config.MustLoad()
	log := logger.New(cfg.Env, os.Stdout)
	slog.SetDefault(log)

	log.Info("starting campus-api",
		slog.String("env", cfg.Env),
		slog.String("version", version),
		slog.String("driver", cfg.Database.Driver),
	)

	if err := run(cfg, log, started); err != nil {
		log.Error("campus-api stopped with an error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log.Info("server stopped gracefully")
}

func run(cfg *config.Config, log *slog.Logger, started time.Time) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := database.Open(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("failed to close storage", slog.String("error", err.Error()))
		}
	}()
	log.Info("storage initialised", database.Target(cfg.Database))

	if err := store.Migrate(ctx); err != nil {
		return err
	}

	uploads, err := upload.New(cfg.Upload.Dir, cfg.Upload.MaxBytes)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr: cfg.HTTPServer.Address(),
		Handler: server.New(server.Deps{
			Env:     cfg.Env,
			Log:     log,
			Store:   store,
			Uploads: uploads,
			Metrics: metrics.New(),
			Started: started,
			Detail:  cfg.Env != config.EnvProd,
		}),
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(log.Handler(), slog.LevelError),
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server started", slog.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
