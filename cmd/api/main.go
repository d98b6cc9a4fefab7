package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pageza/devfolio/backend/config"
	"github.com/pageza/devfolio/backend/internal/database"
	"github.com/pageza/devfolio/backend/internal/logging"
	"github.com/pageza/devfolio/backend/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logging.Setup(config.GetEnvironment(), cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg)
	if err != nil {
		fatal("failed to connect to database", err)
	}
	if err := database.RunMigrations(db, cfg.MigrationDir); err != nil {
		fatal("failed to run migrations", err)
	}

	redisClient, err := database.NewRedisClient(ctx, cfg)
	if err != nil {
		// Continue without redis; sessions and notices fall back to memory
		slog.Warn("redis unavailable, using in-memory stores", "error", err)
		redisClient = nil
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	srv, err := server.New(ctx, cfg, db, redisClient)
	if err != nil {
		fatal("failed to build server", err)
	}

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		if err != nil {
			fatal("server error", err)
		}
	case <-ctx.Done():
		slog.Info("received shutdown signal")
	}

	slog.Info("shutting down server")
	if err := srv.Shutdown(context.Background()); err != nil {
		fatal("server shutdown error", err)
	}
	slog.Info("server stopped")
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
