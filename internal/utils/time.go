package utils

import (
	"fmt"
	"time"

	"habitbuddy/internal/constants"
)

// DateKey formats a time as the standard date key (YYYY-MM-DD).
func DateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDateKey parses a date key back into a midnight local time.
func ParseDateKey(dateKey string) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat, dateKey, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %w", err)
	}
	return t, nil
}

// PrevDateKey returns the date key for the calendar day before the given key.
// Malformed input is returned unchanged; lookups against it simply miss.
func PrevDateKey(dateKey string) string {
	t, err := ParseDateKey(dateKey)
	if err != nil {
		return dateKey
	}
	return DateKey(t.AddDate(0, 0, -1))
}

// NextDateKey returns the date key for the calendar day after the given key.
func NextDateKey(dateKey string) string {
	t, err := ParseDateKey(dateKey)
	if err != nil {
		return dateKey
	}
	return DateKey(t.AddDate(0, 0, 1))
}

// MinutesOfDay returns minutes elapsed since midnight for the given time.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// ParseTimeToMinutes parses an HH:MM string into minutes since midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := time.Parse(constants.TimeFormat, timeStr)
	if err != nil {
		return 0, fmt.Errorf("invalid time format %q: %w", timeStr, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ValidateTimeFormat checks if the string matches the standard HH:MM format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := time.Parse(constants.TimeFormat, timeStr)
	return err == nil
}

// MinuteDistance returns the distance in minutes between two minutes-of-day
// values, taking the shorter of the direct difference and the midnight
// wraparound. A reminder at 23:50 is 15 minutes from 00:05, not 1425.
func MinuteDistance(a, b int) int {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	if wrapped := 24*60 - diff; wrapped < diff {
		return wrapped
	}
	return diff
}

// Weekday returns the weekday number (0=Sunday..6=Saturday) for a time.
func Weekday(t time.Time) int {
	return int(t.Weekday())
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Move to next month, roll back a day.
	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return firstOfMonth.AddDate(0, 1, -1).Day()
}
