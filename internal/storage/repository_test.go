// ABOUTME: Tests for Repository implementation on SQLite.
// ABOUTME: Verifies users, entries, settings, and aggregation queries.
package storage

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/harperreed/pushups/internal/models"
)

func TestCreateAndGetUser(t *testing.T) {
	db := setupTestDB(t)

	u := mustCreateUser(t, db, "Alice", "sec-alice")
	if u.Name != "alice" {
		t.Errorf("name = %q, want lowercase alice", u.Name)
	}

	got, err := db.GetUserByName("ALICE")
	if err != nil {
		t.Fatalf("GetUserByName failed: %v", err)
	}
	if got.ID != u.ID || got.Secret != "sec-alice" {
		t.Errorf("got %+v, want %+v", got, u)
	}

	got, err = db.GetUserBySecret("sec-alice")
	if err != nil {
		t.Fatalf("GetUserBySecret failed: %v", err)
	}
	if got.Name != "alice" {
		t.Errorf("GetUserBySecret name = %q", got.Name)
	}

	if _, err := db.GetUserBySecret("nope"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := db.GetUserBySecret(""); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound for empty secret, got %v", err)
	}
}

func TestCreateUserDuplicates(t *testing.T) {
	db := setupTestDB(t)
	mustCreateUser(t, db, "alice", "sec-alice")

	tests := []struct {
		name   string
		user   string
		secret string
	}{
		{name: "duplicate name", user: "alice", secret: "other"},
		{name: "duplicate name different case", user: "ALICE", secret: "other2"},
		{name: "duplicate secret", user: "bob", secret: "sec-alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := db.CreateUser(tt.user, tt.secret)
			if !errors.Is(err, models.ErrDuplicate) {
				t.Errorf("expected ErrDuplicate, got %v", err)
			}
		})
	}
}

func TestCreateUserValidation(t *testing.T) {
	db := setupTestDB(t)
	for _, tc := range [][2]string{{"", "s"}, {"bob", ""}, {"bob", "api"}, {"a/b", "s"}} {
		if _, err := db.CreateUser(tc[0], tc[1]); !models.IsValidation(err) {
			t.Errorf("CreateUser(%q, %q) expected ValidationError, got %v", tc[0], tc[1], err)
		}
	}
}

func TestAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	mustCreateUser(t, db, "alice", "sec-alice")

	if u, err := db.Authenticate("Alice", "sec-alice"); err != nil || u.Name != "alice" {
		t.Fatalf("Authenticate valid = %v, %v", u, err)
	}
	if _, err := db.Authenticate("alice", "wrong"); !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("wrong secret: expected ErrUnauthorized, got %v", err)
	}
	if _, err := db.Authenticate("nobody", "sec-alice"); !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("unknown name: expected ErrUnauthorized, got %v", err)
	}
}

func TestListUsersOrdered(t *testing.T) {
	db := setupTestDB(t)
	mustCreateUser(t, db, "carol", "c")
	mustCreateUser(t, db, "alice", "a")
	mustCreateUser(t, db, "bob", "b")

	users, err := db.ListUsers()
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}
	for i, want := range []string{"alice", "bob", "carol"} {
		if users[i].Name != want {
			t.Errorf("users[%d] = %s, want %s", i, users[i].Name, want)
		}
	}
}

func TestRemoveUserKeepsEntries(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()
	alice := mustCreateUser(t, db, "alice", "sec-alice")
	mustAddEntry(t, db, alice.ID, 20, now)

	if err := db.RemoveUser("alice"); err != nil {
		t.Fatalf("RemoveUser failed: %v", err)
	}
	if err := db.RemoveUser("alice"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("second RemoveUser: expected ErrNotFound, got %v", err)
	}

	var n int
	if err := db.db.QueryRow(`SELECT COUNT(*) FROM pushup_entries WHERE user_id = ?`, alice.ID).Scan(&n); err != nil {
		t.Fatalf("count entries: %v", err)
	}
	if n != 1 {
		t.Errorf("entries after removal = %d, want 1", n)
	}

	totals, err := db.Totals()
	if err != nil {
		t.Fatalf("Totals failed: %v", err)
	}
	if len(totals) != 0 {
		t.Errorf("removed user should not appear in totals: %v", totals)
	}

	// A re-added user gets a fresh id and does not inherit the history.
	again := mustCreateUser(t, db, "alice", "sec-alice-2")
	if again.ID == alice.ID {
		t.Error("user id was reused")
	}
	total, _ := db.UserTotal(again.ID)
	if total != 0 {
		t.Errorf("re-added user total = %d, want 0", total)
	}
}

func TestSetAndUnsetRabbit(t *testing.T) {
	db := setupTestDB(t)
	mustCreateUser(t, db, "bunny", "sec-bunny")

	if err := db.SetRabbit("bunny", 3000); err != nil {
		t.Fatalf("SetRabbit failed: %v", err)
	}
	u, _ := db.GetUserByName("bunny")
	if !u.IsRabbit || u.RabbitTarget != 3000 {
		t.Errorf("after SetRabbit: %+v", u)
	}

	if err := db.SetRabbit("bunny", 0); !models.IsValidation(err) {
		t.Errorf("SetRabbit(0) expected ValidationError, got %v", err)
	}
	if err := db.SetRabbit("ghost", 10); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("SetRabbit unknown: expected ErrNotFound, got %v", err)
	}

	if err := db.UnsetRabbit("bunny"); err != nil {
		t.Fatalf("UnsetRabbit failed: %v", err)
	}
	u, _ = db.GetUserByName("bunny")
	if u.IsRabbit || u.RabbitTarget != 0 {
		t.Errorf("after UnsetRabbit: %+v", u)
	}
}

func TestAddEntryValidation(t *testing.T) {
	db := setupTestDB(t)
	alice := mustCreateUser(t, db, "alice", "sec-alice")

	for _, n := range []int{0, 251, -1} {
		if _, err := db.AddEntry(alice.ID, n, time.Now()); !models.IsValidation(err) {
			t.Errorf("AddEntry(%d) expected ValidationError, got %v", n, err)
		}
	}
	total, _ := db.UserTotal(alice.ID)
	if total != 0 {
		t.Errorf("invalid entries were stored: total = %d", total)
	}
}

func TestTotalsIncludeZero(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()
	alice := mustCreateUser(t, db, "alice", "sec-alice")
	mustCreateUser(t, db, "bob", "sec-bob")
	mustAddEntry(t, db, alice.ID, 10, now)
	mustAddEntry(t, db, alice.ID, 15, now)

	totals, err := db.Totals()
	if err != nil {
		t.Fatalf("Totals failed: %v", err)
	}
	m := totalsByName(totals)
	if m["alice"] != 25 {
		t.Errorf("alice = %d, want 25", m["alice"])
	}
	if v, ok := m["bob"]; !ok || v != 0 {
		t.Errorf("bob should report 0, got %d (present=%v)", v, ok)
	}
	if totals[0].Name != "alice" || totals[1].Name != "bob" {
		t.Errorf("totals not ordered by name: %v", totals)
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	alice := mustCreateUser(t, db, "alice", "sec-alice")
	base := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)

	for i := 1; i <= 12; i++ {
		mustAddEntry(t, db, alice.ID, i, base.Add(time.Duration(i)*time.Minute))
	}

	history, err := db.History(alice.ID, 0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 10 {
		t.Fatalf("history length = %d, want 10", len(history))
	}
	for i, e := range history {
		if want := 12 - i; e.Count != want {
			t.Errorf("history[%d].Count = %d, want %d", i, e.Count, want)
		}
	}
	if history[0].CreatedAt != "2026-10-01 08:12:00" {
		t.Errorf("created_at = %q, want verbatim stored timestamp", history[0].CreatedAt)
	}
}

func TestHistoryTiesByInsertion(t *testing.T) {
	db := setupTestDB(t)
	alice := mustCreateUser(t, db, "alice", "sec-alice")
	at := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)

	mustAddEntry(t, db, alice.ID, 1, at)
	mustAddEntry(t, db, alice.ID, 2, at)
	mustAddEntry(t, db, alice.ID, 3, at)

	history, err := db.History(alice.ID, 10)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	got := fmt.Sprint(history[0].Count, history[1].Count, history[2].Count)
	if got != "3 2 1" {
		t.Errorf("tie order = %s, want 3 2 1", got)
	}
}

func TestHistoryEmpty(t *testing.T) {
	db := setupTestDB(t)
	alice := mustCreateUser(t, db, "alice", "sec-alice")

	history, err := db.History(alice.ID, 10)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if history == nil || len(history) != 0 {
		t.Errorf("expected empty non-nil history, got %v", history)
	}
}

func TestChallengeTotalsWindow(t *testing.T) {
	db := setupTestDB(t)
	if err := db.SetChallengeWindow("2026-10-01", "2026-10-31"); err != nil {
		t.Fatalf("SetChallengeWindow failed: %v", err)
	}
	alice := mustCreateUser(t, db, "alice", "sec-alice")
	mustCreateUser(t, db, "bob", "sec-bob")

	mustAddEntry(t, db, alice.ID, 100, time.Date(2026, 9, 30, 23, 59, 59, 0, time.UTC)) // before
	mustAddEntry(t, db, alice.ID, 10, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))     // first instant
	mustAddEntry(t, db, alice.ID, 20, time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC))   // middle
	mustAddEntry(t, db, alice.ID, 30, time.Date(2026, 10, 31, 23, 59, 59, 0, time.UTC)) // end day counts
	mustAddEntry(t, db, alice.ID, 200, time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC))    // end+1 excluded

	now := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	totals, err := db.ChallengeTotals(now, time.Hour)
	if err != nil {
		t.Fatalf("ChallengeTotals failed: %v", err)
	}
	m := totalsByName(totals)
	if m["alice"] != 60 {
		t.Errorf("alice windowed = %d, want 60", m["alice"])
	}
	if v, ok := m["bob"]; !ok || v != 0 {
		t.Errorf("bob windowed = %d (present=%v), want 0", v, ok)
	}

	u, _ := db.GetUserByName("alice")
	userTotal, err := db.UserChallengeTotal(u, now, time.Hour)
	if err != nil {
		t.Fatalf("UserChallengeTotal failed: %v", err)
	}
	if userTotal != 60 {
		t.Errorf("UserChallengeTotal = %d, want 60", userTotal)
	}

	allTime, _ := db.UserTotal(alice.ID)
	if allTime != 360 {
		t.Errorf("UserTotal = %d, want 360", allTime)
	}
}

func TestChallengeTotalsRabbitIgnoresRows(t *testing.T) {
	db := setupTestDB(t)
	if err := db.SetChallengeWindow("2026-10-01", "2026-10-10"); err != nil {
		t.Fatalf("SetChallengeWindow failed: %v", err)
	}
	bunny := mustCreateUser(t, db, "bunny", "sec-bunny")
	mustAddEntry(t, db, bunny.ID, 250, time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC))
	if err := db.SetRabbit("bunny", 1000); err != nil {
		t.Fatalf("SetRabbit failed: %v", err)
	}

	// 10-day window, 1-day steps: after 5 days the rabbit is at 500.
	now := time.Date(2026, 10, 6, 1, 0, 0, 0, time.UTC)
	totals, err := db.ChallengeTotals(now, 24*time.Hour)
	if err != nil {
		t.Fatalf("ChallengeTotals failed: %v", err)
	}
	if len(totals) != 1 || !totals[0].IsRabbit {
		t.Fatalf("expected one rabbit row, got %v", totals)
	}
	if totals[0].Total != 500 {
		t.Errorf("rabbit total = %d, want 500", totals[0].Total)
	}

	allTime, err := db.Totals()
	if err != nil {
		t.Fatalf("Totals failed: %v", err)
	}
	if len(allTime) != 0 {
		t.Errorf("rabbits should be excluded from all-time totals: %v", allTime)
	}
}

func TestChallengeTotalsWithoutWindow(t *testing.T) {
	db := setupTestDB(t)
	if err := db.ClearChallengeWindow(); err != nil {
		t.Fatalf("ClearChallengeWindow failed: %v", err)
	}
	alice := mustCreateUser(t, db, "alice", "sec-alice")
	bunny := mustCreateUser(t, db, "bunny", "sec-bunny")
	if err := db.SetRabbit("bunny", 100); err != nil {
		t.Fatalf("SetRabbit failed: %v", err)
	}
	mustAddEntry(t, db, alice.ID, 40, time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC))

	totals, err := db.ChallengeTotals(time.Now(), time.Hour)
	if err != nil {
		t.Fatalf("ChallengeTotals failed: %v", err)
	}
	m := totalsByName(totals)
	if m["alice"] != 40 || m["bunny"] != 0 {
		t.Errorf("unwindowed totals = %v, want alice=40 bunny=0", m)
	}

	bunny.IsRabbit, bunny.RabbitTarget = true, 100
	if got, err := db.UserChallengeTotal(alice, time.Now(), time.Hour); err != nil || got != 40 {
		t.Errorf("alice UserChallengeTotal = %d, %v, want 40", got, err)
	}
	if got, err := db.UserChallengeTotal(bunny, time.Now(), time.Hour); err != nil || got != 0 {
		t.Errorf("bunny UserChallengeTotal = %d, %v, want 0", got, err)
	}
}

func TestClearChallengeWindow(t *testing.T) {
	db := setupTestDB(t)
	if err := db.SetGoal(500); err != nil {
		t.Fatalf("SetGoal failed: %v", err)
	}
	if err := db.ClearChallengeWindow(); err != nil {
		t.Fatalf("ClearChallengeWindow failed: %v", err)
	}

	for _, key := range []string{models.SettingChallengeStart, models.SettingChallengeEnd} {
		if _, ok, err := db.GetSetting(key); err != nil || ok {
			t.Errorf("%s should be unset, got ok=%v err=%v", key, ok, err)
		}
	}
	c, err := db.GetChallenge()
	if err != nil {
		t.Fatalf("GetChallenge failed: %v", err)
	}
	if c.HasWindow() || c.Contains(time.Now()) {
		t.Errorf("cleared challenge should have no window: %+v", c)
	}
	if c.Goal == nil || *c.Goal != 500 {
		t.Errorf("goal should be untouched, got %v", c.Goal)
	}

	// Clearing an already clear window is not an error.
	if err := db.ClearChallengeWindow(); err != nil {
		t.Errorf("second ClearChallengeWindow failed: %v", err)
	}
}

func TestSetChallengeWindowStoresCanonicalDates(t *testing.T) {
	db := setupTestDB(t)
	if err := db.SetChallengeWindow(" 2025-06-10", "2025-06-30\t"); err != nil {
		t.Fatalf("SetChallengeWindow failed: %v", err)
	}

	c, err := db.GetChallenge()
	if err != nil {
		t.Fatalf("GetChallenge failed: %v", err)
	}
	if c.Start != "2025-06-10" || c.End != "2025-06-30" {
		t.Fatalf("stored window = %q..%q, want 2025-06-10..2025-06-30", c.Start, c.End)
	}
	if c.Contains(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("a January date should fall outside the window")
	}

	alice := mustCreateUser(t, db, "alice", "sec-alice")
	mustAddEntry(t, db, alice.ID, 100, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	mustAddEntry(t, db, alice.ID, 33, time.Date(2025, 6, 12, 9, 0, 0, 0, time.UTC))

	totals, err := db.ChallengeTotals(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), time.Hour)
	if err != nil {
		t.Fatalf("ChallengeTotals failed: %v", err)
	}
	if m := totalsByName(totals); m["alice"] != 33 {
		t.Errorf("alice windowed = %d, want 33", m["alice"])
	}
}

func TestChallengeSettings(t *testing.T) {
	db := setupTestDB(t)

	c, err := db.GetChallenge()
	if err != nil {
		t.Fatalf("GetChallenge failed: %v", err)
	}
	if !c.HasWindow() {
		t.Error("fresh store should carry seeded challenge dates")
	}
	if c.Title != nil || c.Goal != nil {
		t.Errorf("title and goal should be unset, got %v %v", c.Title, c.Goal)
	}

	if err := db.SetChallengeWindow("2026-10-31", "2026-10-01"); !models.IsValidation(err) {
		t.Errorf("reversed window: expected ValidationError, got %v", err)
	}

	if err := db.SetTitle(""); err != nil {
		t.Fatalf("SetTitle failed: %v", err)
	}
	c, _ = db.GetChallenge()
	if c.Title == nil || *c.Title != "" {
		t.Errorf("empty title should be set-to-empty, got %v", c.Title)
	}

	if err := db.SetTitle("October Push"); err != nil {
		t.Fatalf("SetTitle failed: %v", err)
	}
	if err := db.SetGoal(3000); err != nil {
		t.Fatalf("SetGoal failed: %v", err)
	}
	c, _ = db.GetChallenge()
	if c.Title == nil || *c.Title != "October Push" {
		t.Errorf("title = %v", c.Title)
	}
	if c.Goal == nil || *c.Goal != 3000 {
		t.Errorf("goal = %v", c.Goal)
	}

	if err := db.SetGoal(0); !models.IsValidation(err) {
		t.Errorf("SetGoal(0): expected ValidationError, got %v", err)
	}

	if err := db.ClearTitle(); err != nil {
		t.Fatalf("ClearTitle failed: %v", err)
	}
	if err := db.ClearGoal(); err != nil {
		t.Fatalf("ClearGoal failed: %v", err)
	}
	c, _ = db.GetChallenge()
	if c.Title != nil || c.Goal != nil {
		t.Errorf("after clear: title=%v goal=%v", c.Title, c.Goal)
	}
}

func TestGetSettingUnset(t *testing.T) {
	db := setupTestDB(t)
	v, ok, err := db.GetSetting("missing")
	if err != nil {
		t.Fatalf("GetSetting failed: %v", err)
	}
	if ok || v != "" {
		t.Errorf("GetSetting(missing) = %q, %v", v, ok)
	}
}
