package util

import (
	"fmt"
	"time"
)

// MaxHoursCenti caps a single entry at 24 hours.
const MaxHoursCenti = 24 * 100

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.
// All persisted dates go through this so equality comparisons hold.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %w", err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// ValidateHours checks an entry's centi-hours: strictly positive, at most 24h.
func ValidateHours(hoursCenti int64) error {
	if hoursCenti <= 0 {
		return fmt.Errorf("hours must be > 0")
	}
	if hoursCenti > MaxHoursCenti {
		return fmt.Errorf("hours must be <= 24")
	}
	return nil
}

// ValidatePeriod checks an inclusive date range (end >= start).
func ValidatePeriod(start, end time.Time) error {
	if end.Before(start) {
		return fmt.Errorf("period end must be >= period start")
	}
	return nil
}

// WithinPeriod reports whether d falls inside [start, end] inclusive.
func WithinPeriod(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}
