package timeutil

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates throughout the pipeline.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string as midnight UTC.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return t, nil
}

// FormatDate formats a time as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatClock formats a time as HH:MM.
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}
