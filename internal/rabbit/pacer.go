// ABOUTME: Rabbit pacer computing a synthetic user's virtual progress.
// ABOUTME: Step-wise linear progress toward a target, quantized to intervals.
package rabbit

import (
	"math"
	"time"

	"github.com/harperreed/pushups/internal/models"
)

// DefaultInterval is how often a rabbit's total advances.
const DefaultInterval = time.Hour

// VirtualTotal returns how many pushups a rabbit has "done" at now when it
// is pacing toward target over [start, end).
//
// Progress only advances at whole interval boundaries counted from start.
// An interval <= 0 selects continuous linear progress instead. The result is
// always within [0, target].
func VirtualTotal(target int, interval time.Duration, start, end, now time.Time) int {
	if target <= 0 || !now.After(start) {
		return 0
	}
	if !now.Before(end) {
		return target
	}

	span := end.Sub(start).Minutes()
	elapsed := now.Sub(start).Minutes()

	if interval <= 0 {
		return int(math.Floor(float64(target) * elapsed / span))
	}

	step := interval.Minutes()
	totalIntervals := int64(math.Floor(span / step))
	if totalIntervals <= 0 {
		return target
	}
	done := int64(math.Floor(elapsed / step))
	if done > totalIntervals {
		done = totalIntervals
	}
	return int(int64(target) * done / totalIntervals)
}

// ChallengeTotal is VirtualTotal over a challenge's window. A challenge
// without a configured window yields 0.
func ChallengeTotal(u *models.User, c *models.Challenge, interval time.Duration, now time.Time) int {
	start, end, ok := c.Window()
	if !ok {
		return 0
	}
	return VirtualTotal(u.RabbitTarget, interval, start, end, now)
}
