package lot

import "time"

// BilledHours returns the number of whole hours billed for a stay:
// any started hour counts in full, so even one minute past a boundary
// bills the next hour. A non-positive elapsed duration clamps to zero.
func BilledHours(entry, exit time.Time) int {
	elapsed := exit.Sub(entry)
	if elapsed <= 0 {
		return 0
	}
	hours := elapsed / time.Hour
	if elapsed%time.Hour != 0 {
		hours++
	}
	return int(hours)
}

// AmountDue computes the ceiling-hour amount owed for a stay at the
// given exit instant. Pure: callable every tick for the live preview
// and once more for the final value sent on close.
func AmountDue(entry, exit time.Time, hourlyRate float64) float64 {
	return float64(BilledHours(entry, exit)) * hourlyRate
}
