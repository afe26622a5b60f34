// ABOUTME: Challenge model built from the settings table.
// ABOUTME: Date parsing, window arithmetic, and calendar-month defaults.
package models

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the ISO date format used for challenge_start/challenge_end.
const DateLayout = "2006-01-02"

// Setting keys.
const (
	SettingChallengeStart = "challenge_start"
	SettingChallengeEnd   = "challenge_end"
	SettingChallengeTitle = "challenge_title"
	SettingChallengeGoal  = "challenge_goal"
)

// Challenge is the administrator-defined date range and its framing.
// Start and End are empty when no window is configured. Title and Goal are
// nil when unset; a non-nil empty Title was explicitly set to "".
type Challenge struct {
	Start string
	End   string
	Title *string
	Goal  *int
}

// HasWindow reports whether both challenge dates are set.
func (c *Challenge) HasWindow() bool {
	return c.Start != "" && c.End != ""
}

// Window returns the half-open UTC interval [start 00:00, end+1day 00:00).
func (c *Challenge) Window() (start, end time.Time, ok bool) {
	if !c.HasWindow() {
		return time.Time{}, time.Time{}, false
	}
	s, err := ParseDate(c.Start)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	e, err := ParseDate(c.End)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return s, e.AddDate(0, 0, 1), true
}

// Contains reports whether the UTC calendar date of t lies within
// [Start, End], both inclusive.
func (c *Challenge) Contains(t time.Time) bool {
	if !c.HasWindow() {
		return false
	}
	day := t.UTC().Format(DateLayout)
	return day >= c.Start && day <= c.End
}

// ParseDate parses a YYYY-MM-DD date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, Invalid("date", "%q is not YYYY-MM-DD", s)
	}
	return t, nil
}

// ValidateWindow checks that start and end are dates with start < end and
// returns them in canonical YYYY-MM-DD form.
func ValidateWindow(start, end string) (string, string, error) {
	s, err := ParseDate(start)
	if err != nil {
		return "", "", err
	}
	e, err := ParseDate(end)
	if err != nil {
		return "", "", err
	}
	if !s.Before(e) {
		return "", "", Invalid("date", "start %s must be before end %s", start, end)
	}
	return s.Format(DateLayout), e.Format(DateLayout), nil
}

// ParseGoal parses a positive integer challenge goal.
func ParseGoal(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, Invalid("goal", "must be a positive integer")
	}
	return n, nil
}

// AddMonth adds one calendar month to t. When the day of month does not exist
// in the following month, the result is clamped to that month's last day
// (Jan 31 -> Feb 28 or 29).
func AddMonth(t time.Time) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+1, 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}

// DefaultWindow returns today .. today+1 month as YYYY-MM-DD strings (UTC).
func DefaultWindow(now time.Time) (start, end string) {
	today := now.UTC()
	return today.Format(DateLayout), AddMonth(today).Format(DateLayout)
}
