// Package billing implements the monthly allowance rollover arithmetic.
// It is pure: the credit engine calls it at the top of every check while
// holding the account row lock, and persists the outcome itself.
package billing

import "time"

// returns the first cycle boundary strictly after the given instant for an
// account anchored on billingDay (1-31). When billingDay exceeds the length
// of a month the boundary clamps to that month's last day, matching how
// payment providers anchor cycles started on the 29th-31st.
func NextResetAt(billingDay int, after time.Time) time.Time {
	after = after.UTC()

	monthStart := time.Date(after.Year(), after.Month(), 1, 0, 0, 0, 0, time.UTC)

	for {
		boundary := monthStart.AddDate(0, 0, clampDay(billingDay, monthStart)-1)
		if boundary.After(after) {
			return boundary
		}

		monthStart = monthStart.AddDate(0, 1, 0)
	}
}

// advances resetAt over every boundary that has passed between resetAt and
// now. Returns the latest boundary not after now and whether any cycle
// rolled over at all. Idempotent: once resetAt is inside the current cycle,
// further calls report no rollover.
func MaybeReset(billingDay int, resetAt, now time.Time) (time.Time, bool) {
	rolled := false

	for {
		next := NextResetAt(billingDay, resetAt)
		if now.Before(next) {
			return resetAt, rolled
		}

		resetAt = next
		rolled = true
	}
}

// clamps a billing day to the number of days in the month starting at monthStart
func clampDay(billingDay int, monthStart time.Time) int {
	if billingDay < 1 {
		return 1
	}

	// day 0 of the next month is the last day of this one
	lastDay := monthStart.AddDate(0, 1, -1).Day()
	if billingDay > lastDay {
		return lastDay
	}

	return billingDay
}
