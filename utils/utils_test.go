package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 240.0, Round2(240.0000001))
	assert.Equal(t, 199.99, Round2(199.994))
	assert.Equal(t, -10.13, Round2(-10.125))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5.0, Clamp(5, 1, 10))
	assert.Equal(t, 1.0, Clamp(0.5, 1, 10))
	assert.Equal(t, 10.0, Clamp(20, 1, 10))
	assert.Equal(t, 1.0, Clamp(1, 1, 10))
	assert.Equal(t, 10.0, Clamp(10, 1, 10))
}

func TestDateOnly(t *testing.T) {
	ts := time.Date(2026, time.March, 21, 17, 45, 12, 999, time.UTC)
	assert.Equal(t, time.Date(2026, time.March, 21, 0, 0, 0, 0, time.UTC), DateOnly(ts))

	// Non-UTC times truncate on their UTC calendar day.
	loc := time.FixedZone("UTC+10", 10*3600)
	late := time.Date(2026, time.March, 21, 5, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC), DateOnly(late))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(2026, time.March))
	assert.Equal(t, 28, DaysInMonth(2026, time.February))
	assert.Equal(t, 29, DaysInMonth(2028, time.February))
	assert.Equal(t, 30, DaysInMonth(2026, time.April))
	assert.Equal(t, 31, DaysInMonth(2026, time.December))
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 19, DaysUntil(now, time.Date(2026, time.March, 21, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, DaysUntil(now, time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, DaysUntil(now, time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, -1, DaysUntil(now, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)))
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, IsWeekend(time.Date(2026, time.March, 21, 0, 0, 0, 0, time.UTC)))
	assert.True(t, IsWeekend(time.Date(2026, time.March, 22, 0, 0, 0, 0, time.UTC)))
	assert.False(t, IsWeekend(time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)))
	assert.False(t, IsWeekend(time.Date(2026, time.March, 18, 0, 0, 0, 0, time.UTC)))
}

func TestMonthInRange(t *testing.T) {
	assert.True(t, MonthInRange(time.July, time.June, time.August))
	assert.True(t, MonthInRange(time.June, time.June, time.August))
	assert.True(t, MonthInRange(time.August, time.June, time.August))
	assert.False(t, MonthInRange(time.May, time.June, time.August))

	// Wrap over year end.
	assert.True(t, MonthInRange(time.December, time.November, time.February))
	assert.True(t, MonthInRange(time.January, time.November, time.February))
	assert.False(t, MonthInRange(time.March, time.November, time.February))
	assert.False(t, MonthInRange(time.October, time.November, time.February))
}
