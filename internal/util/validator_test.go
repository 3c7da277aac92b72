package util

import (
	"testing"
	"time"
)

func TestValidateHours_Valid(t *testing.T) {
	testCases := []int64{1, 100, 250, 2400}

	for _, hours := range testCases {
		err := ValidateHours(hours)
		if err != nil {
			t.Errorf("ValidateHours(%d) error = %v, want nil", hours, err)
		}
	}
}

func TestValidateHours_NotPositive(t *testing.T) {
	testCases := []int64{0, -1, -250}

	for _, hours := range testCases {
		err := ValidateHours(hours)
		if err == nil {
			t.Errorf("ValidateHours(%d) error = nil, want error", hours)
		}
	}
}

func TestValidateHours_OverDailyCap(t *testing.T) {
	err := ValidateHours(2401)

	if err == nil {
		t.Error("ValidateHours(2401) error = nil, want error")
	}
}

func TestParseDate_Valid(t *testing.T) {
	testCases := []string{
		"2025-01-01",
		"2025-12-31",
		"2025-06-15",
	}

	for _, date := range testCases {
		d, err := ParseDate(date)
		if err != nil {
			t.Errorf("ParseDate(%q) error = %v, want nil", date, err)
			continue
		}
		if FormatDate(d) != date {
			t.Errorf("FormatDate(ParseDate(%q)) = %q", date, FormatDate(d))
		}
		if d.Location() != time.UTC || d.Hour() != 0 {
			t.Errorf("ParseDate(%q) not normalized to UTC midnight: %v", date, d)
		}
	}
}

func TestParseDate_InvalidFormat(t *testing.T) {
	testCases := []string{
		"",
		"2025/01/01",
		"01-01-2025",
		"2025-1-1",
		"not-a-date",
		"2025-13-01",
		"2025-01-32",
	}

	for _, date := range testCases {
		_, err := ParseDate(date)
		if err == nil {
			t.Errorf("ParseDate(%q) error = nil, want error", date)
		}
	}
}

func TestValidatePeriod(t *testing.T) {
	start, _ := ParseDate("2025-09-01")
	end, _ := ParseDate("2025-09-07")

	if err := ValidatePeriod(start, end); err != nil {
		t.Errorf("ValidatePeriod(start, end) error = %v, want nil", err)
	}
	if err := ValidatePeriod(start, start); err != nil {
		t.Errorf("ValidatePeriod(start, start) error = %v, want nil", err)
	}
	if err := ValidatePeriod(end, start); err == nil {
		t.Error("ValidatePeriod(end, start) error = nil, want error")
	}
}

func TestWithinPeriod(t *testing.T) {
	start, _ := ParseDate("2025-09-01")
	end, _ := ParseDate("2025-09-07")

	inside := []string{"2025-09-01", "2025-09-04", "2025-09-07"}
	for _, s := range inside {
		d, _ := ParseDate(s)
		if !WithinPeriod(d, start, end) {
			t.Errorf("WithinPeriod(%s) = false, want true", s)
		}
	}

	outside := []string{"2025-08-31", "2025-09-08"}
	for _, s := range outside {
		d, _ := ParseDate(s)
		if WithinPeriod(d, start, end) {
			t.Errorf("WithinPeriod(%s) = true, want false", s)
		}
	}
}
