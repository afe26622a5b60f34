// ABOUTME: User CRUD operations for SQLite storage.
// ABOUTME: Names are lowercased; removal keeps historical entries.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/pushups/internal/models"
)

const userColumns = `id, name, secret, is_rabbit, rabbit_target`

// CreateUser stores a new participant. Duplicate names or secrets yield
// models.ErrDuplicate.
func (d *DB) CreateUser(name, secret string) (*models.User, error) {
	name = models.NormalizeName(name)
	if err := models.ValidateName(name); err != nil {
		return nil, err
	}
	if err := models.ValidateSecret(secret); err != nil {
		return nil, err
	}

	result, err := d.db.Exec(`INSERT INTO users (name, secret) VALUES (?, ?)`, name, secret)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("create user %s: %w", name, models.ErrDuplicate)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &models.User{ID: id, Name: name, Secret: secret}, nil
}

// GetUserByName looks up a user by (normalized) name.
func (d *DB) GetUserByName(name string) (*models.User, error) {
	row := d.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE name = ?`, models.NormalizeName(name))
	return scanUser(row)
}

// GetUserBySecret looks up the owner of a secret link.
func (d *DB) GetUserBySecret(secret string) (*models.User, error) {
	if secret == "" {
		return nil, models.ErrNotFound
	}
	row := d.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE secret = ?`, secret)
	return scanUser(row)
}

// Authenticate matches a (name, secret) pair. Unknown names and wrong
// secrets are indistinguishable to the caller.
func (d *DB) Authenticate(name, secret string) (*models.User, error) {
	row := d.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE name = ? AND secret = ?`,
		models.NormalizeName(name), secret)
	u, err := scanUser(row)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrUnauthorized
	}
	return u, err
}

// ListUsers returns all users ordered by name.
func (d *DB) ListUsers() ([]*models.User, error) {
	rows, err := d.db.Query(`SELECT ` + userColumns + ` FROM users ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Secret, &u.IsRabbit, &u.RabbitTarget); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

// RemoveUser deletes a user row. Entries keep their dangling user_id;
// AUTOINCREMENT guarantees the id is never handed out again.
func (d *DB) RemoveUser(name string) error {
	name = models.NormalizeName(name)
	result, err := d.db.Exec(`DELETE FROM users WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("remove user: %w", err)
	}
	return expectAffected(result, "user "+name)
}

// SetRabbit turns a user into a pacer heading for target by challenge end.
func (d *DB) SetRabbit(name string, target int) error {
	if err := models.ValidateRabbitTarget(target); err != nil {
		return err
	}
	name = models.NormalizeName(name)
	result, err := d.db.Exec(`UPDATE users SET is_rabbit = 1, rabbit_target = ? WHERE name = ?`, target, name)
	if err != nil {
		return fmt.Errorf("set rabbit: %w", err)
	}
	return expectAffected(result, "user "+name)
}

// UnsetRabbit turns a pacer back into a regular participant.
func (d *DB) UnsetRabbit(name string) error {
	name = models.NormalizeName(name)
	result, err := d.db.Exec(`UPDATE users SET is_rabbit = 0, rabbit_target = 0 WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("unset rabbit: %w", err)
	}
	return expectAffected(result, "user "+name)
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Secret, &u.IsRabbit, &u.RabbitTarget)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func expectAffected(result sql.Result, what string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", what, models.ErrNotFound)
	}
	return nil
}
