// ABOUTME: Tests for challenge date handling.
// ABOUTME: Covers month clamping, window bounds, and validation.
package models

import (
	"testing"
	"time"
)

func TestAddMonth(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "mid month", in: "2026-10-14", want: "2026-11-14"},
		{name: "jan 31 non-leap", in: "2025-01-31", want: "2025-02-28"},
		{name: "jan 31 leap", in: "2024-01-31", want: "2024-02-29"},
		{name: "march 31", in: "2026-03-31", want: "2026-04-30"},
		{name: "december rolls year", in: "2026-12-31", want: "2027-01-31"},
		{name: "feb 28 to march", in: "2026-02-28", want: "2026-03-28"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := ParseDate(tt.in)
			if err != nil {
				t.Fatalf("ParseDate(%q) failed: %v", tt.in, err)
			}
			got := AddMonth(in).Format(DateLayout)
			if got != tt.want {
				t.Errorf("AddMonth(%s) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestDefaultWindow(t *testing.T) {
	now := time.Date(2025, time.January, 31, 22, 15, 0, 0, time.UTC)
	start, end := DefaultWindow(now)
	if start != "2025-01-31" {
		t.Errorf("start = %s, want 2025-01-31", start)
	}
	if end != "2025-02-28" {
		t.Errorf("end = %s, want 2025-02-28", end)
	}
}

func TestValidateWindow(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{name: "valid", start: "2026-10-01", end: "2026-10-31"},
		{name: "padded", start: " 2026-10-01", end: "2026-10-31\n"},
		{name: "equal dates", start: "2026-10-01", end: "2026-10-01", wantErr: true},
		{name: "reversed", start: "2026-10-31", end: "2026-10-01", wantErr: true},
		{name: "bad start", start: "10/01/2026", end: "2026-10-31", wantErr: true},
		{name: "bad end", start: "2026-10-01", end: "2026-02-30", wantErr: true},
		{name: "empty", start: "", end: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := ValidateWindow(tt.start, tt.end)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateWindow(%q, %q) error = %v, wantErr %v", tt.start, tt.end, err, tt.wantErr)
			}
			if err != nil {
				if !IsValidation(err) {
					t.Errorf("expected ValidationError, got %T", err)
				}
				return
			}
			if start != "2026-10-01" || end != "2026-10-31" {
				t.Errorf("canonical window = %q..%q, want 2026-10-01..2026-10-31", start, end)
			}
		})
	}
}

func TestChallengeWindow(t *testing.T) {
	c := &Challenge{Start: "2026-10-01", End: "2026-10-31"}
	start, end, ok := c.Window()
	if !ok {
		t.Fatal("expected window")
	}
	if want := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC); !start.Equal(want) {
		t.Errorf("start = %v, want %v", start, want)
	}
	if want := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC); !end.Equal(want) {
		t.Errorf("end = %v, want %v", end, want)
	}

	empty := &Challenge{}
	if _, _, ok := empty.Window(); ok {
		t.Error("expected no window for empty challenge")
	}
}

func TestChallengeContains(t *testing.T) {
	c := &Challenge{Start: "2026-10-01", End: "2026-10-31"}

	tests := []struct {
		at   time.Time
		want bool
	}{
		{time.Date(2026, 9, 30, 23, 59, 59, 0, time.UTC), false},
		{time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), true},
		{time.Date(2026, 10, 31, 23, 59, 59, 0, time.UTC), true},
		{time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		if got := c.Contains(tt.at); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.at, got, tt.want)
		}
	}

	if (&Challenge{}).Contains(time.Now()) {
		t.Error("challenge without window should contain nothing")
	}
}

func TestParseGoal(t *testing.T) {
	if n, err := ParseGoal("1000"); err != nil || n != 1000 {
		t.Errorf("ParseGoal(1000) = %d, %v", n, err)
	}
	for _, bad := range []string{"0", "-5", "ten", "", "1.5"} {
		if _, err := ParseGoal(bad); err == nil {
			t.Errorf("ParseGoal(%q) expected error", bad)
		}
	}
}
