// utils/clock.go - Wall-clock and elapsed-time helpers
package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseClock parses a "HH:MM" 24-hour clock value
func ParseClock(value string) (hour, minute int, err error) {
	h, m, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", value)
	}
	hour, err = strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", value)
	}
	minute, err = strconv.Atoi(m)
	if err != nil || len(m) != 2 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", value)
	}
	return hour, minute, nil
}

// NormalizeClock returns value in canonical zero-padded "HH:MM" form
func NormalizeClock(value string) (string, error) {
	hour, minute, err := ParseClock(value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// At returns the instant on day's calendar date at the given clock value,
// in day's location.
func At(day time.Time, clock string) (time.Time, error) {
	hour, minute, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	y, mo, d := day.Date()
	return time.Date(y, mo, d, hour, minute, 0, 0, day.Location()), nil
}

func FormatClock(t time.Time) string {
	return t.Format("15:04")
}

// FormatElapsed renders seconds as "m:ss"
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// ElapsedSeconds combines a minutes and seconds entry into total seconds
func ElapsedSeconds(minutes, seconds int) (int, error) {
	if minutes < 0 || seconds < 0 || seconds > 59 {
		return 0, fmt.Errorf("invalid time %d:%02d", minutes, seconds)
	}
	total := minutes*60 + seconds
	if total <= 0 {
		return 0, fmt.Errorf("time must be greater than zero")
	}
	return total, nil
}
