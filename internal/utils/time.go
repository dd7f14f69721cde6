package utils

import "time"

// FormatLocal returns the provided time formatted in the machine's local zone.
func FormatLocal(t time.Time) string {
	return t.In(time.Local).Format(time.RFC1123)
}

// FormatDate returns only the calendar date, in local time.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format("2006-01-02")
}
