package db

import (
	"errors"
	"log/slog"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to Postgres using DATABASE_URL. TranslateError is enabled so
// unique-constraint violations surface as gorm.ErrDuplicatedKey.
func Open() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

// Migrate runs GORM auto-migrations for the core tables.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return errors.New("db connection is nil")
	}
	if err := conn.AutoMigrate(
		&User{},
		&Poll{},
		&PollOption{},
		&Vote{},
		&Session{},
		&Event{},
	); err != nil {
		return err
	}
	slog.Info("database migration complete")
	return nil
}
