package main

import (
	"errors"
	"log/slog"
	"os"

	"votelyst/internal/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		slog.Warn("no .env loaded", "error", err)
	}
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		slog.Error("DATABASE_URL is not set")
		os.Exit(1)
	}

	m, err := migrate.New("file://db/migrations", dsn)
	if err != nil {
		slog.Error("migration setup failed", "error", err)
		os.Exit(1)
	}
	switch err := m.Up(); {
	case err == nil:
		slog.Info("database migrations applied")
	case errors.Is(err, migrate.ErrNoChange):
		slog.Info("database schema already up to date")
	default:
		slog.Error("database migration failed", "error", err)
		os.Exit(1)
	}
}
