package lot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBilledHoursRoundsUpStartedHours(t *testing.T) {
	entry := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, BilledHours(entry, entry.Add(time.Minute)))
	assert.Equal(t, 1, BilledHours(entry, entry.Add(time.Hour)))
	assert.Equal(t, 2, BilledHours(entry, entry.Add(61*time.Minute)))
	assert.Equal(t, 2, BilledHours(entry, entry.Add(2*time.Hour)))
	assert.Equal(t, 3, BilledHours(entry, entry.Add(2*time.Hour+time.Second)))
}

func TestBilledHoursClampsNonPositive(t *testing.T) {
	entry := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, BilledHours(entry, entry))
	assert.Equal(t, 0, BilledHours(entry, entry.Add(-time.Hour)))
	assert.Equal(t, 0.0, AmountDue(entry, entry.Add(-time.Hour), 10))
}

func TestBilledHoursMonotonic(t *testing.T) {
	entry := time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC)
	prev := 0
	for m := 0; m <= 6*60; m += 7 {
		hours := BilledHours(entry, entry.Add(time.Duration(m)*time.Minute))
		assert.GreaterOrEqual(t, hours, prev)
		prev = hours
	}
}

func TestAmountDue(t *testing.T) {
	entry := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	exit := time.Date(2026, 8, 31, 12, 15, 0, 0, time.UTC)

	// 2h15m at R$ 10/h bills 3 started hours.
	assert.Equal(t, 30.0, AmountDue(entry, exit, 10))
	assert.Equal(t, 7.5, AmountDue(entry, entry.Add(30*time.Minute), 7.5))
}
