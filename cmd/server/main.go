package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"votelyst/internal/config"
	"votelyst/internal/db"
	"votelyst/internal/server"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		slog.Warn("failed to load .env", "error", err)
	}
	cfg := config.Load()

	conn, err := db.Open()
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		slog.Error("database handle unavailable", "error", err)
		os.Exit(1)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetimeSeconds) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.DBConnMaxIdleTimeSeconds) * time.Second)

	if err := db.Migrate(conn); err != nil {
		slog.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	addr := ":8080"
	if env := os.Getenv("PORT"); env != "" {
		addr = ":" + env
	}

	srv := server.New(conn, cfg)
	slog.Info("votelyst server listening", "addr", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
