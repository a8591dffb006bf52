package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInstantNow(t *testing.T) {
	before := time.Now()
	got, err := ParseInstant("")
	require.NoError(t, err)
	assert.WithinDuration(t, before, got, time.Second)

	got, err = ParseInstant("NOW")
	require.NoError(t, err)
	assert.WithinDuration(t, before, got, time.Second)
}

func TestParseInstantClockOnly(t *testing.T) {
	got, err := ParseInstant("14:30")
	require.NoError(t, err)

	now := time.Now()
	assert.Equal(t, now.Year(), got.Year())
	assert.Equal(t, now.Month(), got.Month())
	assert.Equal(t, now.Day(), got.Day())
	assert.Equal(t, 14, got.Hour())
	assert.Equal(t, 30, got.Minute())
	assert.Equal(t, time.Local, got.Location())
}

func TestParseInstantLayouts(t *testing.T) {
	want := time.Date(2026, 8, 31, 9, 15, 0, 0, time.Local)

	for _, input := range []string{
		"2026-08-31T09:15",
		"2026-08-31 09:15",
		"31/08/2026 09:15",
		"  2026-08-31T09:15  ",
	} {
		got, err := ParseInstant(input)
		require.NoError(t, err, input)
		assert.True(t, got.Equal(want), input)
	}

	withSeconds, err := ParseInstant("2026-08-31T09:15:42")
	require.NoError(t, err)
	assert.Equal(t, 42, withSeconds.Second())
}

func TestParseInstantRejectsGarbage(t *testing.T) {
	for _, input := range []string{"yesterday", "31-08-2026", "9h15"} {
		_, err := ParseInstant(input)
		assert.Error(t, err, input)
	}
}

func TestNormalizePlate(t *testing.T) {
	got, err := NormalizePlate("  abc1d23 ")
	require.NoError(t, err)
	assert.Equal(t, "ABC1D23", got)

	_, err = NormalizePlate("   ")
	assert.Error(t, err)
}
