package util

import "time"

// PreviousMonth returns the year and month for the previous month
func PreviousMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}

// YearMonth returns the calendar year and month of t
func YearMonth(t time.Time) (int, int) {
	return t.Year(), int(t.Month())
}

// ValidMonth reports whether month is in 1..12
func ValidMonth(month int) bool {
	return month >= 1 && month <= 12
}
