// Package utils provides utility functions for the application.
package utils

import (
	"math"
	"time"
)

// UTCNow returns the current time in UTC
func UTCNow() time.Time {
	return time.Now().UTC()
}

// UTCNowPtr returns a pointer to the current time in UTC
func UTCNowPtr() *time.Time {
	now := UTCNow()
	return &now
}

// UTCNowAdd returns the current UTC time plus the given duration
func UTCNowAdd(d time.Duration) time.Time {
	return UTCNow().Add(d)
}

// DateOnly truncates a time to midnight UTC of the same calendar day.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysUntil returns the number of days from now until the target date,
// rounded up. Dates in the past yield negative values.
func DaysUntil(now, target time.Time) int {
	diff := DateOnly(target).Sub(now.UTC())
	return int(math.Ceil(diff.Hours() / 24))
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// MonthInRange reports whether month m lies inside [start, end], treating
// ranges that wrap over year end (e.g. Nov..Feb) as contiguous.
func MonthInRange(m, start, end time.Month) bool {
	if start <= end {
		return m >= start && m <= end
	}
	return m >= start || m <= end
}
