package utils

import "time"

// StartOfDay truncates t to midnight UTC.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameTradingDay reports whether a and b fall on the same UTC calendar
// day. Daily close series carry one row per trading day.
func SameTradingDay(a, b time.Time) bool {
	return StartOfDay(a).Equal(StartOfDay(b))
}
