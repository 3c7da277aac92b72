package service

import (
	"sort"
	"time"

	"github.com/hr-pommala/sphuta-tms-freelancer/internal/models"
)

// DailyTotal is the summed hours of all entries sharing one date.
// Derived on every call, never persisted.
type DailyTotal struct {
	Date       time.Time
	HoursCenti int64
}

// TotalHoursCenti sums the hours of every entry. Zero entries sum to
// exactly zero, not an error.
func TotalHoursCenti(entries []models.TimeEntry) int64 {
	var total int64
	for i := range entries {
		total += entries[i].HoursCenti
	}
	return total
}

// DailyTotals groups entries by entry date and sums hours per date,
// sorted ascending. Entries sharing a date contribute additively.
func DailyTotals(entries []models.TimeEntry) []DailyTotal {
	byDate := make(map[time.Time]int64)
	for i := range entries {
		byDate[entries[i].EntryDate] += entries[i].HoursCenti
	}

	totals := make([]DailyTotal, 0, len(byDate))
	for d, h := range byDate {
		totals = append(totals, DailyTotal{Date: d, HoursCenti: h})
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Date.Before(totals[j].Date)
	})
	return totals
}
