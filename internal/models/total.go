// ABOUTME: Aggregated leaderboard totals.
// ABOUTME: Totals are always derived from entries, never stored.
package models

// Total is one leaderboard row.
type Total struct {
	Name     string
	Total    int
	IsRabbit bool
}

// TotalsMap converts ordered totals to a name-keyed map for JSON output.
// encoding/json sorts map keys, which preserves name order.
func TotalsMap(totals []Total) map[string]int {
	m := make(map[string]int, len(totals))
	for _, t := range totals {
		m[t.Name] = t.Total
	}
	return m
}
