// Package testutil provides shared test helpers for setting up databases and fixtures.
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/starford/notetodo/internal/models"
	"github.com/starford/notetodo/internal/store"
	"github.com/starford/notetodo/pkg/idx"
)

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *store.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "notetodo-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() {
		os.Remove(dbFile.Name())
		os.Remove(dbFile.Name() + "-wal")
		os.Remove(dbFile.Name() + "-shm")
	})

	db, err := store.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// SeedUser inserts a user directly into the store, bypassing credential checks.
func SeedUser(t *testing.T, db *store.DB, username string, admin bool) models.User {
	t.Helper()
	u := models.User{
		ID:           idx.New(),
		Username:     username,
		PasswordHash: "x",
		Avatar:       models.DefaultAvatar,
		IsAdmin:      admin,
		CreatedAt:    time.Now().UTC(),
	}
	if err := db.CreateUser(context.Background(), u); err != nil {
		t.Fatal(err)
	}
	return u
}

// Clock returns a deterministic now function advancing by one second per call.
func Clock(start time.Time) func() time.Time {
	cur := start.Add(-time.Second)
	return func() time.Time {
		cur = cur.Add(time.Second)
		return cur
	}
}
