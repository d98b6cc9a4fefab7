package main

import (
	"flag"
	"log"
	"log/slog"

	"github.com/pageza/devfolio/backend/config"
	"github.com/pageza/devfolio/backend/internal/database"
	"github.com/pageza/devfolio/backend/internal/logging"
)

func main() {
	dir := flag.String("dir", "", "Directory holding SQL migrations (defaults to MIGRATIONS_DIR)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logging.Setup(config.GetEnvironment(), cfg.LogLevel)

	migrationsDir := cfg.MigrationDir
	if *dir != "" {
		migrationsDir = *dir
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db, migrationsDir); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
	slog.Info("all migrations applied", "dir", migrationsDir, "driver", cfg.DBDriver)
}
