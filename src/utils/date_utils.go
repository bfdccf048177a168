package utils

import (
	"log"
	"time"
)

const DefaultDateFormat = "2006-01-02"

// ParseDate parses a date string using the default format.
// Logs an error and returns zero time if parsing fails.
func ParseDate(dateStr string) time.Time {
	t, err := time.Parse(DefaultDateFormat, dateStr)
	if err != nil {
		log.Printf("Error parsing date '%s' with format '%s': %v. Returning zero time.", dateStr, DefaultDateFormat, err)
		return time.Time{}
	}
	return t
}

// FormatDate renders a time as a plain calendar date string.
func FormatDate(t time.Time) string {
	return t.Format(DefaultDateFormat)
}

// TruncateToDay drops the time-of-day component, normalizing to midnight UTC.
// All trade dates are calendar dates; comparisons go through this.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole calendar days from 'from' to 'to'.
func DaysBetween(from, to time.Time) int {
	return int(TruncateToDay(to).Sub(TruncateToDay(from)).Hours() / 24)
}

// WeekStart returns the Monday of the ISO week containing t.
func WeekStart(t time.Time) time.Time {
	day := TruncateToDay(t)
	isoWeekday := int(day.Weekday())
	if isoWeekday == 0 { // Sunday
		isoWeekday = 7
	}
	return day.AddDate(0, 0, -(isoWeekday - 1))
}
