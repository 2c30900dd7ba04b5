package server

import (
	"testing"

	"votelyst/internal/db"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestConn opens an in-memory sqlite database with the full schema.
// The pool is pinned to one connection so every query sees the same
// in-memory database.
func newTestConn(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("test database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return conn
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(newTestConn(t))
}

func strPtr(value string) *string {
	return &value
}

// mustCreatePoll builds a public two-option poll for tests that just need one.
func mustCreatePoll(t *testing.T, store *Store, ownerID *string, requiresLogin bool, optionTexts ...string) *db.Poll {
	t.Helper()
	if len(optionTexts) == 0 {
		optionTexts = []string{"Red", "Blue"}
	}
	poll, err := store.CreatePoll(ownerID, "Best color?", "", optionTexts, requiresLogin)
	if err != nil {
		t.Fatalf("create poll: %v", err)
	}
	return poll
}

func mustRegister(t *testing.T, store *Store, email string) *db.User {
	t.Helper()
	user, err := store.RegisterUser(email, "Test User", "correct horse battery", bcryptTestCost)
	if err != nil {
		t.Fatalf("register user: %v", err)
	}
	return user
}

// bcrypt.MinCost keeps password hashing fast in tests.
const bcryptTestCost = 4
