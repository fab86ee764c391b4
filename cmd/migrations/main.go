package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/vncsmyrnk/election/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/election/internal/config"
)

// Usage: migrations <name>, where name selects the file, e.g. "init.up".
func main() {
	if len(os.Args) < 2 {
		slog.Error("a migration name is required")
		os.Exit(2)
	}
	migrationName := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := cfg.Logger(os.Stdout)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := postgres.Open(ctx, cfg.DSN(), postgres.PoolConfig{MaxOpenConns: 1})
	if err != nil {
		logger.Error("failed to connect", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	file, err := postgres.RunMigration(ctx, db, migrationName)
	if err != nil {
		logger.Error("migration failed", "name", migrationName, "error", err)
		os.Exit(1)
	}

	logger.Info("migration file executed successfully", "file", file)
}
