package budget

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidMonth = errors.New("invalid month, expected YYYY-MM")

const monthLayout = "2006-01"

// ParseMonth parses a "YYYY-MM" string into the first day of that month, UTC.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse(monthLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidMonth
	}
	return t, nil
}

// FormatMonth renders a month as "YYYY-MM".
func FormatMonth(t time.Time) string {
	return t.Format(monthLayout)
}

// NormalizeMonth truncates a date to the first day of its month, UTC.
func NormalizeMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// PreviousMonth returns the first day of the calendar month preceding t.
// AddDate on a first-of-month date is calendar safe, including the
// January to previous-December rollover.
func PreviousMonth(t time.Time) time.Time {
	return NormalizeMonth(t).AddDate(0, -1, 0)
}
