// ABOUTME: Repository interface for pushup data storage.
// ABOUTME: Defines the contract for users, entries, settings, and aggregation.
package storage

import (
	"context"
	"time"

	"github.com/harperreed/pushups/internal/models"
)

// Repository defines the storage interface for pushup data.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// User operations
	CreateUser(name, secret string) (*models.User, error)
	GetUserByName(name string) (*models.User, error)
	GetUserBySecret(secret string) (*models.User, error)
	Authenticate(name, secret string) (*models.User, error)
	ListUsers() ([]*models.User, error)
	RemoveUser(name string) error
	SetRabbit(name string, target int) error
	UnsetRabbit(name string) error

	// Entry operations
	AddEntry(userID int64, count int, at time.Time) (*models.Entry, error)
	History(userID int64, limit int) ([]*models.Entry, error)

	// Challenge settings
	GetChallenge() (*models.Challenge, error)
	SetChallengeWindow(start, end string) error
	ClearChallengeWindow() error
	SetTitle(title string) error
	ClearTitle() error
	SetGoal(goal int) error
	ClearGoal() error

	// Aggregation
	Totals() ([]models.Total, error)
	ChallengeTotals(now time.Time, interval time.Duration) ([]models.Total, error)
	UserTotal(userID int64) (int, error)
	UserChallengeTotal(u *models.User, now time.Time, interval time.Duration) (int, error)

	// Lifecycle
	SchemaVersion() (int, error)
	Ping(ctx context.Context) error
	Close() error
}

var _ Repository = (*DB)(nil)
