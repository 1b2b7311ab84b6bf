// Package dateutils provides common date and calendar operations used throughout the application.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Common date format constants used throughout the application
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutFull     = "2006-01-02 15:04:05"
	DateLayoutSlash    = "2006/01/02"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutMonth    = "2006-01"
)

// CommonFormats is a list of standard formats to try when parsing dates
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutFull,
	DateLayoutSlash,
	DateLayoutEuropean,
	"01-02-06",
	"1/2/06 15:04",
	"1/2/06",
	"1/2/2006",
	"02/01/2006",
	"2-Jan-2006",
	"Jan 2, 2006",
}

// ParseDate attempts to parse a date string using multiple common formats.
// The result is normalized to midnight UTC. Returns the parsed time and the
// detected format.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return Date(t.Year(), t.Month(), t.Day()), format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// ParseMonth parses a year-month string, accepting either "2006-01" or a full
// date whose day component is ignored. Returns the first day of that month.
func ParseMonth(monthStr string) (time.Time, error) {
	monthStr = CleanDateString(monthStr)

	if t, err := time.Parse(DateLayoutMonth, monthStr); err == nil {
		return StartOfMonth(t), nil
	}
	if t, _, err := ParseDate(monthStr); err == nil {
		return StartOfMonth(t), nil
	}
	return time.Time{}, fmt.Errorf("unable to parse month: %s", monthStr)
}

// CleanDateString removes unwanted characters and normalizes a date string
func CleanDateString(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)

	re := regexp.MustCompile(`\s+`)
	dateStr = re.ReplaceAllString(dateStr, " ")

	return dateStr
}

// Date builds a date at midnight UTC. All calendar arithmetic in this
// package assumes dates normalized this way.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// ToMonthLabel formats a time.Time value as a year-month label (YYYY-MM)
func ToMonthLabel(date time.Time) string {
	return date.Format(DateLayoutMonth)
}

// StartOfMonth returns the first day of the month for a given date
func StartOfMonth(date time.Time) time.Time {
	return Date(date.Year(), date.Month(), 1)
}

// EndOfMonth returns the last day of the month for a given date
func EndOfMonth(date time.Time) time.Time {
	return StartOfMonth(date).AddDate(0, 1, -1)
}

// AddMonths advances a date by n calendar months, clamping the day of month
// to the last day of the target month instead of normalizing past it
// (2024-01-31 plus one month is 2024-02-29, not 2024-03-02). Lease
// anniversary arithmetic depends on this clamping.
func AddMonths(date time.Time, n int) time.Time {
	first := Date(date.Year(), date.Month(), 1).AddDate(0, n, 0)
	day := date.Day()
	if last := EndOfMonth(first).Day(); day > last {
		day = last
	}
	return Date(first.Year(), first.Month(), day)
}

// DaysBetween returns the number of whole days from a through b, exclusive
// of a's day (b minus a in days). Negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// DaysInclusive returns the day count from a through b counting both
// endpoints. Zero or negative spans yield 0.
func DaysInclusive(a, b time.Time) int {
	if b.Before(a) {
		return 0
	}
	return DaysBetween(a, b) + 1
}

// OverlapDays returns the inclusive day count of the intersection of
// [aStart, aEnd] and [bStart, bEnd], or 0 when the ranges are disjoint.
func OverlapDays(aStart, aEnd, bStart, bEnd time.Time) int {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	return DaysInclusive(start, end)
}

// MonthDiff returns the calendar month difference between a and b,
// ignoring the day of month: (b.year-a.year)*12 + (b.month-a.month).
func MonthDiff(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

// MonthSpan returns the count of calendar months from a's month through
// b's month inclusive. A span ending before it starts yields 0.
func MonthSpan(a, b time.Time) int {
	span := MonthDiff(a, b) + 1
	if span < 0 {
		return 0
	}
	return span
}

// CalendarYears returns the whole calendar years from `from` to `to` plus
// whether any partial month or day remains beyond them. The day of month is
// respected: years only advance on the anniversary day, matching how a lease
// term is counted from its delivery date.
func CalendarYears(from, to time.Time) (years int, remainder bool) {
	months := MonthDiff(from, to)
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		return 0, !to.Equal(from)
	}
	years = months / 12
	remainder = months%12 != 0 || to.After(AddMonths(from, months))
	return years, remainder
}
