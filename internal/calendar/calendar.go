// Package calendar implements date-only arithmetic on YYYY-MM-DD strings and ISO weeks.
//
// All arithmetic is done on calendar dates at UTC midnight so daylight-saving
// transitions never shift a day.
package calendar

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// DateLayout is the canonical date format.
const DateLayout = "2006-01-02"

var (
	// ErrInvalidDate is returned for strings that are not a real YYYY-MM-DD date.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidWeek is returned for strings that are not a real YYYY-Www week.
	ErrInvalidWeek = errors.New("invalid week")
)

var weekPattern = regexp.MustCompile(`^(\d{4})-W(\d{2})$`)

// ParseDate parses a YYYY-MM-DD string to UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// Format renders t's calendar date.
func Format(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the local calendar date of now.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// AddDays shifts a date by n days.
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return Format(t.AddDate(0, 0, n)), nil
}

// DiffDays returns the whole number of days from a to b.
func DiffDays(a, b string) (int, error) {
	ta, err := ParseDate(a)
	if err != nil {
		return 0, err
	}
	tb, err := ParseDate(b)
	if err != nil {
		return 0, err
	}
	return int(tb.Sub(ta).Hours() / 24), nil
}

// WeekStart returns the Monday of an ISO week given as "YYYY-Www".
// Week 01 is the week containing January 4th.
func WeekStart(week string) (string, error) {
	m := weekPattern.FindStringSubmatch(week)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidWeek, week)
	}
	year, _ := strconv.Atoi(m[1])
	num, _ := strconv.Atoi(m[2])
	if num < 1 {
		return "", fmt.Errorf("%w: %q", ErrInvalidWeek, week)
	}

	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	offset := (int(jan4.Weekday()) + 6) % 7
	monday := jan4.AddDate(0, 0, -offset+(num-1)*7)

	// Reject W53 in years that only have 52 weeks.
	if y, w := monday.ISOWeek(); y != year || w != num {
		return "", fmt.Errorf("%w: %q", ErrInvalidWeek, week)
	}
	return Format(monday), nil
}

// WeekOf returns the ISO week label containing date.
func WeekOf(date string) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	y, w := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", y, w), nil
}

// InWeek reports whether date falls in the seven days starting at weekStart.
// Unparsable dates are never in the week.
func InWeek(date, weekStart string) bool {
	d, err := DiffDays(weekStart, date)
	if err != nil {
		return false
	}
	return d >= 0 && d < 7
}

// Range returns the n consecutive dates ending at end (inclusive), oldest first.
func Range(end string, n int) ([]string, error) {
	t, err := ParseDate(end)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, Format(t.AddDate(0, 0, -i)))
	}
	return out, nil
}
