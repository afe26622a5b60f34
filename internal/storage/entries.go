// ABOUTME: Pushup entry operations for SQLite storage.
// ABOUTME: Entries are append-only; there is no update or delete path.
package storage

import (
	"fmt"
	"time"

	"github.com/harperreed/pushups/internal/models"
)

// AddEntry appends a pushup entry timestamped at (UTC, second granularity).
func (d *DB) AddEntry(userID int64, count int, at time.Time) (*models.Entry, error) {
	if err := models.ValidateCount(count); err != nil {
		return nil, err
	}

	createdAt := models.FormatTimestamp(at)
	result, err := d.db.Exec(
		`INSERT INTO pushup_entries (user_id, count, created_at) VALUES (?, ?, ?)`,
		userID, count, createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("add entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("add entry: %w", err)
	}
	return &models.Entry{ID: id, UserID: userID, Count: count, CreatedAt: createdAt}, nil
}

// History returns a user's most recent entries, newest first. Entries with
// the same timestamp are ordered by insertion, latest first. A limit <= 0
// uses models.HistoryLimit.
func (d *DB) History(userID int64, limit int) ([]*models.Entry, error) {
	if limit <= 0 {
		limit = models.HistoryLimit
	}

	// CAST keeps the driver from converting the DATETIME column to time.Time,
	// so created_at is returned exactly as stored.
	rows, err := d.db.Query(`
		SELECT id, user_id, count, CAST(created_at AS TEXT)
		FROM pushup_entries
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	defer rows.Close()

	entries := []*models.Entry{}
	for rows.Next() {
		var e models.Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Count, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
