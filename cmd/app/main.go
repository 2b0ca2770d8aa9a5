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

	"travelagency/cmd"
	"travelagency/internal/pkg/logger"

	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	slog.SetDefault(appLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.Error("Application stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg cmd.Config, appLogger *slog.Logger) error {
	app, err := cmd.NewCompositionRoot(ctx, cfg, appLogger)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.Close(closeCtx); err != nil {
			appLogger.Error("Failed to release resources", "error", err)
		}
	}()

	server, err := app.NewHTTPServer(ctx)
	if err != nil {
		return err
	}

	jobManager := app.NewJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
