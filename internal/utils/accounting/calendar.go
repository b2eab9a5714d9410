package accounting

import "time"

// Months are 1-based (time.Month) at every boundary of this package.

// MonthRange returns the first and last calendar day of (year, month),
// both at UTC midnight.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// MonthDays enumerates every calendar day of (year, month) ascending, at UTC
// midnight. Day counts follow the real calendar, including Feb 29 in leap
// years.
func MonthDays(year int, month time.Month) []time.Time {
	start, end := MonthRange(year, month)
	days := make([]time.Time, 0, 31)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// DaysInMonth returns the number of calendar days in (year, month).
func DaysInMonth(year int, month time.Month) int {
	_, end := MonthRange(year, month)
	return end.Day()
}
