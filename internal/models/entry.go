// ABOUTME: PushupEntry model and count validation.
// ABOUTME: Entries are append-only; counts must be within [MinCount, MaxCount].
package models

import (
	"strconv"
	"strings"
	"time"
)

const (
	MinCount = 1
	MaxCount = 250

	// TimestampLayout matches SQLite's CURRENT_TIMESTAMP text format.
	TimestampLayout = "2006-01-02 15:04:05"

	// HistoryLimit is the number of entries shown on a user's page.
	HistoryLimit = 10
)

// Entry is a single pushup submission.
type Entry struct {
	ID        int64  `json:"-"`
	UserID    int64  `json:"-"`
	Count     int    `json:"count"`
	CreatedAt string `json:"created_at"`
}

// FormatTimestamp renders t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ValidateCount checks that n is an acceptable pushup count.
func ValidateCount(n int) error {
	if n < MinCount || n > MaxCount {
		return Invalid("count", "must be %d-%d", MinCount, MaxCount)
	}
	return nil
}

// ParseCount parses a decimal integer count and validates its range.
func ParseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, Invalid("count", "must be an integer")
	}
	if err := ValidateCount(n); err != nil {
		return 0, err
	}
	return n, nil
}
