// utils/dates.go
package utils

import "time"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// DayString renders a calendar day as YYYY-MM-DD.
func DayString(t time.Time) string {
	return t.Format("2006-01-02")
}

// MonthString renders a calendar month as YYYY-MM.
func MonthString(t time.Time) string {
	return t.Format("2006-01")
}
