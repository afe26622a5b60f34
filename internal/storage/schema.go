// ABOUTME: Ordered list of schema migrations for the pushups store.
// ABOUTME: NEVER edit or reorder existing steps; only append new ones.
package storage

import (
	"database/sql"
	"time"

	"github.com/harperreed/pushups/internal/models"
)

// Migrations is the full schema history. The recorded user_version is a
// position in this slice, so historical entries must stay byte-for-byte.
var Migrations = []Migration{
	{
		Name: "create users",
		SQL: `CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			secret TEXT NOT NULL UNIQUE
		)`,
	},
	{
		Name: "create pushup_entries",
		SQL: `CREATE TABLE pushup_entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL REFERENCES users(id),
			count INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	},
	{
		Name: "create settings",
		SQL:  `CREATE TABLE settings (key TEXT PRIMARY KEY, value TEXT)`,
		Seed: seedChallengeDates,
	},
	{
		Name: "add rabbit columns",
		SQL: `
			ALTER TABLE users ADD COLUMN is_rabbit INTEGER NOT NULL DEFAULT 0;
			ALTER TABLE users ADD COLUMN rabbit_target INTEGER NOT NULL DEFAULT 0;
		`,
	},
	{
		Name: "index entries by user and time",
		SQL:  `CREATE INDEX idx_entries_user_created ON pushup_entries(user_id, created_at DESC)`,
	},
}

// seedChallengeDates sets a default window of today .. one month from today.
func seedChallengeDates(tx *sql.Tx, now time.Time) error {
	start, end := models.DefaultWindow(now)
	const q = `INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`
	if _, err := tx.Exec(q, models.SettingChallengeStart, start); err != nil {
		return err
	}
	_, err := tx.Exec(q, models.SettingChallengeEnd, end)
	return err
}
