package parser

import (
	"fmt"
	"strings"
	"time"
)

// instantLayouts are the wall-clock formats operators can type at the
// prompt or in the TUI forms, most specific first.
var instantLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"02/01/2006 15:04",
}

// ParseInstant parses an operator-picked date and time in local wall
// clock. Supported inputs:
//   - "" or "now"          - the current instant
//   - "15:04"              - that time today
//   - "2006-01-02 15:04"   (also with 'T', with seconds, or dd/mm/yyyy)
func ParseInstant(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" || strings.EqualFold(input, "now") {
		return time.Now(), nil
	}

	if t, err := time.ParseInLocation("15:04", input, time.Local); err == nil {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
	}

	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, input, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid date/time %q. Use: HH:MM, yyyy-mm-dd HH:MM, or dd/mm/yyyy HH:MM", input)
}

// FormatInstant formats an instant for display in tables and cards.
func FormatInstant(t time.Time) string {
	return t.Local().Format("02/01/2006 15:04")
}
