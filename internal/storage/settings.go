// ABOUTME: Key/value settings storage and the challenge configuration.
// ABOUTME: An absent key means unset, which is distinct from an empty value.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/harperreed/pushups/internal/models"
)

// GetSetting returns the value for key and whether it is set.
func (d *DB) GetSetting(key string) (string, bool, error) {
	var value sql.NullString
	err := d.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get setting %s: %w", key, err)
	}
	return value.String, true, nil
}

// SetSetting creates or replaces a setting.
func (d *DB) SetSetting(key, value string) error {
	_, err := d.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

// DeleteSetting unsets a setting. Deleting an absent key is not an error.
func (d *DB) DeleteSetting(key string) error {
	if _, err := d.db.Exec(`DELETE FROM settings WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete setting %s: %w", key, err)
	}
	return nil
}

// GetChallenge assembles the challenge from its settings rows.
func (d *DB) GetChallenge() (*models.Challenge, error) {
	rows, err := d.db.Query(`SELECT key, value FROM settings WHERE key IN (?, ?, ?, ?)`,
		models.SettingChallengeStart, models.SettingChallengeEnd,
		models.SettingChallengeTitle, models.SettingChallengeGoal)
	if err != nil {
		return nil, fmt.Errorf("get challenge: %w", err)
	}
	defer rows.Close()

	c := &models.Challenge{}
	for rows.Next() {
		var key string
		var value sql.NullString
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		switch key {
		case models.SettingChallengeStart:
			c.Start = value.String
		case models.SettingChallengeEnd:
			c.End = value.String
		case models.SettingChallengeTitle:
			title := value.String
			c.Title = &title
		case models.SettingChallengeGoal:
			goal, err := strconv.Atoi(value.String)
			if err != nil {
				return nil, fmt.Errorf("stored challenge goal %q: %w", value.String, err)
			}
			c.Goal = &goal
		}
	}
	return c, rows.Err()
}

// SetChallengeWindow sets both dates atomically after validating start < end.
// Dates are stored in canonical YYYY-MM-DD form.
func (d *DB) SetChallengeWindow(start, end string) error {
	start, end, err := models.ValidateWindow(start, end)
	if err != nil {
		return err
	}

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("set challenge: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const q = `INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := tx.Exec(q, models.SettingChallengeStart, start); err != nil {
		return fmt.Errorf("set challenge start: %w", err)
	}
	if _, err := tx.Exec(q, models.SettingChallengeEnd, end); err != nil {
		return fmt.Errorf("set challenge end: %w", err)
	}
	return tx.Commit()
}

// ClearChallengeWindow unsets both challenge dates atomically.
func (d *DB) ClearChallengeWindow() error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("clear challenge: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`DELETE FROM settings WHERE key IN (?, ?)`,
		models.SettingChallengeStart, models.SettingChallengeEnd)
	if err != nil {
		return fmt.Errorf("clear challenge: %w", err)
	}
	return tx.Commit()
}

// SetTitle sets the challenge title. An empty title is stored as set-to-empty.
func (d *DB) SetTitle(title string) error {
	return d.SetSetting(models.SettingChallengeTitle, title)
}

// ClearTitle unsets the challenge title.
func (d *DB) ClearTitle() error {
	return d.DeleteSetting(models.SettingChallengeTitle)
}

// SetGoal sets the shared challenge goal.
func (d *DB) SetGoal(goal int) error {
	if goal < 1 {
		return models.Invalid("goal", "must be a positive integer")
	}
	return d.SetSetting(models.SettingChallengeGoal, strconv.Itoa(goal))
}

// ClearGoal unsets the challenge goal.
func (d *DB) ClearGoal() error {
	return d.DeleteSetting(models.SettingChallengeGoal)
}
