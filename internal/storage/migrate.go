// ABOUTME: Positional schema migrator tracked by PRAGMA user_version.
// ABOUTME: Applies each pending step exactly once, in order, one transaction per step.
package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// Migration is one append-only schema step. Seed, when set, runs right after
// SQL in the same transaction so a table is never left present but unseeded.
type Migration struct {
	Name string
	SQL  string
	Seed func(tx *sql.Tx, now time.Time) error
}

// MigrationError reports the step that failed. The store stays at Step-1.
type MigrationError struct {
	Step int
	Name string
	Err  error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("migration %d (%s): %v", e.Step, e.Name, e.Err)
}

func (e *MigrationError) Unwrap() error {
	return e.Err
}

// Migrate brings the store to the latest schema version and returns the
// number of steps applied.
func (d *DB) Migrate() (int, error) {
	return applyMigrations(d.db, Migrations, len(Migrations), time.Now())
}

// MigrateTo brings the store to exactly version target (never downgrades).
func (d *DB) MigrateTo(target int) (int, error) {
	if target < 0 || target > len(Migrations) {
		return 0, fmt.Errorf("migrate: target version %d out of range [0, %d]", target, len(Migrations))
	}
	return applyMigrations(d.db, Migrations, target, time.Now())
}

// SchemaVersion returns the number of migration steps applied to the store.
func (d *DB) SchemaVersion() (int, error) {
	return schemaVersion(d.db)
}

// LatestVersion is the schema version this binary migrates to.
func LatestVersion() int {
	return len(Migrations)
}

type queryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

func schemaVersion(q queryRower) (int, error) {
	var v int
	if err := q.QueryRow("PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}

// applyMigrations runs steps[current:target]. Each step commits together with
// its version bump, so a crash or error resumes from the last committed step.
func applyMigrations(db *sql.DB, steps []Migration, target int, now time.Time) (int, error) {
	current, err := schemaVersion(db)
	if err != nil {
		return 0, err
	}
	if current > len(steps) {
		return 0, fmt.Errorf("schema version %d is newer than this binary supports (%d)", current, len(steps))
	}

	applied := 0
	for i := current; i < target; i++ {
		if err := applyStep(db, steps[i], i+1, now); err != nil {
			return applied, &MigrationError{Step: i + 1, Name: steps[i].Name, Err: err}
		}
		applied++
	}
	return applied, nil
}

func applyStep(db *sql.DB, m Migration, version int, now time.Time) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(m.SQL); err != nil {
		return err
	}
	if m.Seed != nil {
		if err := m.Seed(tx, now); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}
	// PRAGMA arguments cannot be bound parameters.
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", version)); err != nil {
		return fmt.Errorf("set version: %w", err)
	}
	return tx.Commit()
}
