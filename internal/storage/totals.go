// ABOUTME: Read-only aggregation queries over pushup entries.
// ABOUTME: All-time totals, challenge-windowed totals, and rabbit pacing.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/harperreed/pushups/internal/models"
	"github.com/harperreed/pushups/internal/rabbit"
)

// Entries belong to the window when start <= created_at < end + 1 day.
// Comparing the stored text against bare dates works because
// "YYYY-MM-DD" sorts before any "YYYY-MM-DD HH:MM:SS" of the same day.
const windowCondition = `e.created_at >= ? AND e.created_at < date(?, '+1 day')`

// Totals returns the all-time total of every real participant, ordered by
// name. Participants without entries report 0. Rabbits are omitted.
func (d *DB) Totals() ([]models.Total, error) {
	rows, err := d.db.Query(`
		SELECT u.name, COALESCE(SUM(e.count), 0)
		FROM users u
		LEFT JOIN pushup_entries e ON e.user_id = u.id
		WHERE u.is_rabbit = 0
		GROUP BY u.id
		ORDER BY u.name
	`)
	if err != nil {
		return nil, fmt.Errorf("totals: %w", err)
	}
	defer rows.Close()

	totals := []models.Total{}
	for rows.Next() {
		var t models.Total
		if err := rows.Scan(&t.Name, &t.Total); err != nil {
			return nil, fmt.Errorf("scan total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// ChallengeTotals returns every user's total for the challenge window,
// ordered by name. Rabbits report their paced virtual total regardless of
// any rows they own. Without a configured window real users report all-time
// totals and rabbits report 0.
func (d *DB) ChallengeTotals(now time.Time, interval time.Duration) ([]models.Total, error) {
	c, err := d.GetChallenge()
	if err != nil {
		return nil, err
	}

	var rows *sql.Rows
	if c.HasWindow() {
		rows, err = d.db.Query(`
			SELECT u.id, u.name, u.is_rabbit, u.rabbit_target, COALESCE(SUM(e.count), 0)
			FROM users u
			LEFT JOIN pushup_entries e ON e.user_id = u.id AND `+windowCondition+`
			GROUP BY u.id
			ORDER BY u.name
		`, c.Start, c.End)
	} else {
		rows, err = d.db.Query(`
			SELECT u.id, u.name, u.is_rabbit, u.rabbit_target, COALESCE(SUM(e.count), 0)
			FROM users u
			LEFT JOIN pushup_entries e ON e.user_id = u.id
			GROUP BY u.id
			ORDER BY u.name
		`)
	}
	if err != nil {
		return nil, fmt.Errorf("challenge totals: %w", err)
	}
	defer rows.Close()

	totals := []models.Total{}
	for rows.Next() {
		var u models.User
		var sum int
		if err := rows.Scan(&u.ID, &u.Name, &u.IsRabbit, &u.RabbitTarget, &sum); err != nil {
			return nil, fmt.Errorf("scan total: %w", err)
		}
		if u.IsRabbit {
			sum = rabbit.ChallengeTotal(&u, c, interval, now)
		}
		totals = append(totals, models.Total{Name: u.Name, Total: sum, IsRabbit: u.IsRabbit})
	}
	return totals, rows.Err()
}

// UserTotal returns the all-time total for a user id.
func (d *DB) UserTotal(userID int64) (int, error) {
	var total int
	err := d.db.QueryRow(`SELECT COALESCE(SUM(count), 0) FROM pushup_entries WHERE user_id = ?`, userID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("user total: %w", err)
	}
	return total, nil
}

// UserChallengeTotal returns a user's total for the challenge window, or the
// paced virtual total for a rabbit.
func (d *DB) UserChallengeTotal(u *models.User, now time.Time, interval time.Duration) (int, error) {
	c, err := d.GetChallenge()
	if err != nil {
		return 0, err
	}
	if u.IsRabbit {
		return rabbit.ChallengeTotal(u, c, interval, now), nil
	}
	if !c.HasWindow() {
		return d.UserTotal(u.ID)
	}

	var total int
	err = d.db.QueryRow(`
		SELECT COALESCE(SUM(e.count), 0) FROM pushup_entries e
		WHERE e.user_id = ? AND `+windowCondition,
		u.ID, c.Start, c.End).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("user challenge total: %w", err)
	}
	return total, nil
}
