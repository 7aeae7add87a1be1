package dateutil

import (
	"time"
)

// IsLeapYear checks if a year is a leap year
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns the number of days in a given year
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// BeginningOfYear returns the first day of the given year at midnight UTC
func BeginningOfYear(year int) time.Time {
	return time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
}

// EndOfYear returns the last day of the given year at midnight UTC
func EndOfYear(year int) time.Time {
	return time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)
}

// Midnight truncates a date to midnight UTC, keeping the calendar day
func Midnight(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay checks if two dates fall on the same calendar day
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DaysInMonth returns the number of days in the month containing date
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// LastDayOfMonth returns the last calendar day of the given month
func LastDayOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
}

// DayOfMonthClamped returns the given day within the month, pulled back to the
// month's final day when the month is shorter (e.g. day 31 in February)
func DayOfMonthClamped(year int, month time.Month, day int) time.Time {
	if max := DaysInMonth(year, month); day > max {
		day = max
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// AddDays adds a specified number of days to a date
func AddDays(date time.Time, days int) time.Time {
	return date.AddDate(0, 0, days)
}
