package service

import "time"

// DaysInYear returns 366 for Gregorian leap years, otherwise 365.
func DaysInYear(year int) int {
	if (year%4 == 0 && year%100 != 0) || year%400 == 0 {
		return 366
	}
	return 365
}

// DayDifference returns the number of calendar days from b to a (a - b).
// The result is negative when a precedes b. Time-of-day and zone are
// ignored; only the calendar date matters.
func DayDifference(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(da.Sub(db) / (24 * time.Hour))
}
