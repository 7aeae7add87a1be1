package dateutil

import (
	"testing"
	"time"
)

func TestIsLeapYear(t *testing.T) {
	tests := []struct {
		year int
		want bool
	}{
		{2024, true},
		{2025, false},
		{2000, true},
		{1900, false},
	}
	for _, tt := range tests {
		if got := IsLeapYear(tt.year); got != tt.want {
			t.Errorf("IsLeapYear(%d) = %v, want %v", tt.year, got, tt.want)
		}
	}
}

func TestDaysInYear(t *testing.T) {
	if got := DaysInYear(2024); got != 366 {
		t.Errorf("DaysInYear(2024) = %d, want 366", got)
	}
	if got := DaysInYear(2025); got != 365 {
		t.Errorf("DaysInYear(2025) = %d, want 365", got)
	}
}

func TestMidnight(t *testing.T) {
	noon := time.Date(2025, 6, 16, 12, 30, 45, 0, time.FixedZone("EST", -5*3600))
	got := Midnight(noon)

	want := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Midnight = %v, want %v", got, want)
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	b := time.Date(2025, 6, 16, 23, 59, 0, 0, time.UTC)
	c := time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC)

	if !SameDay(a, b) {
		t.Error("Expected same calendar day regardless of clock time")
	}
	if SameDay(a, c) {
		t.Error("Expected different calendar days")
	}
}

func TestLastDayOfMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		day   int
	}{
		{2025, time.February, 28},
		{2024, time.February, 29},
		{2025, time.April, 30},
		{2025, time.December, 31},
	}
	for _, tt := range tests {
		got := LastDayOfMonth(tt.year, tt.month)
		if got.Day() != tt.day {
			t.Errorf("LastDayOfMonth(%d, %s) = day %d, want %d", tt.year, tt.month, got.Day(), tt.day)
		}
	}
}

func TestDayOfMonthClamped(t *testing.T) {
	got := DayOfMonthClamped(2025, time.February, 31)
	if got.Day() != 28 {
		t.Errorf("Expected day 31 clamped to 28 in February 2025, got %d", got.Day())
	}
	got = DayOfMonthClamped(2025, time.March, 31)
	if got.Day() != 31 {
		t.Errorf("Expected day 31 kept in March, got %d", got.Day())
	}
}

func TestAddDays(t *testing.T) {
	start := time.Date(2025, 12, 26, 0, 0, 0, 0, time.UTC)
	got := AddDays(start, 14)

	want := time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("AddDays across year end = %v, want %v", got, want)
	}
}
