// ABOUTME: Shared test helpers for storage tests.
// ABOUTME: Provides setupTestDB for creating isolated database instances.
package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/pushups/internal/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func setupRawDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenUnmigrated(filepath.Join(t.TempDir(), "raw.db"))
	if err != nil {
		t.Fatalf("failed to open raw db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func mustCreateUser(t *testing.T, db *DB, name, secret string) *models.User {
	t.Helper()
	u, err := db.CreateUser(name, secret)
	if err != nil {
		t.Fatalf("CreateUser(%s) failed: %v", name, err)
	}
	return u
}

func mustAddEntry(t *testing.T, db *DB, userID int64, count int, at time.Time) {
	t.Helper()
	if _, err := db.AddEntry(userID, count, at); err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}
}

func totalsByName(totals []models.Total) map[string]int {
	return models.TotalsMap(totals)
}
