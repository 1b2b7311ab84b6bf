package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name        string
		dateStr     string
		expectedOk  bool
		expectedY   int
		expectedM   time.Month
		expectedD   int
		expectedFmt string
	}{
		{"ISO format", "2025-01-15", true, 2025, time.January, 15, DateLayoutISO},
		{"European format", "15.01.2025", true, 2025, time.January, 15, DateLayoutEuropean},
		{"Slash format", "2025/01/15", true, 2025, time.January, 15, DateLayoutSlash},
		{"Full timestamp", "2025-01-15 10:30:45", true, 2025, time.January, 15, DateLayoutFull},
		{"Short slash", "5/12/25", true, 2025, time.May, 12, "1/2/06"},
		{"With month name", "2-Jan-2025", true, 2025, time.January, 2, "2-Jan-2006"},
		{"Surrounding whitespace", "  2025-01-15  ", true, 2025, time.January, 15, DateLayoutISO},
		{"Empty string", "", false, 0, 0, 0, ""},
		{"Not a date", "soon", false, 0, 0, 0, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			date, format, err := ParseDate(tc.dateStr)

			if !tc.expectedOk {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expectedFmt, format)
			assert.Equal(t, Date(tc.expectedY, tc.expectedM, tc.expectedD), date)
		})
	}
}

func TestParseDateNormalizesToMidnightUTC(t *testing.T) {
	date, _, err := ParseDate("2025-01-15 10:30:45")
	assert.NoError(t, err)
	assert.Equal(t, time.UTC, date.Location())
	assert.Equal(t, 0, date.Hour())
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		name       string
		monthStr   string
		expectedOk bool
		expected   time.Time
	}{
		{"Year-month", "2025-08", true, Date(2025, time.August, 1)},
		{"Full date snaps to month start", "2025-08-17", true, Date(2025, time.August, 1)},
		{"European date", "17.08.2025", true, Date(2025, time.August, 1)},
		{"Garbage", "next month", false, time.Time{}},
		{"Empty", "", false, time.Time{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			month, err := ParseMonth(tc.monthStr)
			if !tc.expectedOk {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, month)
		})
	}
}

func TestStartEndOfMonth(t *testing.T) {
	assert.Equal(t, Date(2025, time.February, 1), StartOfMonth(Date(2025, time.February, 17)))
	assert.Equal(t, Date(2025, time.February, 28), EndOfMonth(Date(2025, time.February, 17)))
	assert.Equal(t, Date(2024, time.February, 29), EndOfMonth(Date(2024, time.February, 1)))
	assert.Equal(t, Date(2025, time.December, 31), EndOfMonth(Date(2025, time.December, 31)))
}

func TestAddMonthsClampsDayOfMonth(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		n        int
		expected time.Time
	}{
		{"Plain month step", Date(2025, time.March, 15), 1, Date(2025, time.April, 15)},
		{"Jan 31 into leap February", Date(2024, time.January, 31), 1, Date(2024, time.February, 29)},
		{"Jan 31 into plain February", Date(2023, time.January, 31), 1, Date(2023, time.February, 28)},
		{"Nov 30 three months on", Date(2024, time.November, 30), 3, Date(2025, time.February, 28)},
		{"Leap day plus a year", Date(2024, time.February, 29), 12, Date(2025, time.February, 28)},
		{"Backwards", Date(2025, time.March, 31), -1, Date(2025, time.February, 28)},
		{"Zero months", Date(2025, time.March, 31), 0, Date(2025, time.March, 31)},
		{"Across year end", Date(2025, time.November, 15), 3, Date(2026, time.February, 15)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, AddMonths(tc.date, tc.n))
		})
	}
}

func TestDayCounting(t *testing.T) {
	jan1 := Date(2025, time.January, 1)
	jan31 := Date(2025, time.January, 31)

	assert.Equal(t, 30, DaysBetween(jan1, jan31))
	assert.Equal(t, -30, DaysBetween(jan31, jan1))
	assert.Equal(t, 31, DaysInclusive(jan1, jan31))
	assert.Equal(t, 1, DaysInclusive(jan1, jan1))
	assert.Equal(t, 0, DaysInclusive(jan31, jan1))
}

func TestOverlapDays(t *testing.T) {
	jan := [2]time.Time{Date(2025, time.January, 1), Date(2025, time.January, 31)}

	tests := []struct {
		name     string
		bStart   time.Time
		bEnd     time.Time
		expected int
	}{
		{"Identical ranges", jan[0], jan[1], 31},
		{"Partial from the left", Date(2024, time.December, 15), Date(2025, time.January, 10), 10},
		{"Partial from the right", Date(2025, time.January, 25), Date(2025, time.February, 10), 7},
		{"Contained", Date(2025, time.January, 10), Date(2025, time.January, 12), 3},
		{"Single shared day", Date(2025, time.January, 31), Date(2025, time.February, 28), 1},
		{"Disjoint", Date(2025, time.February, 1), Date(2025, time.February, 28), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, OverlapDays(jan[0], jan[1], tc.bStart, tc.bEnd))
		})
	}
}

func TestMonthDiffAndSpan(t *testing.T) {
	assert.Equal(t, 0, MonthDiff(Date(2025, time.January, 15), Date(2025, time.January, 1)))
	assert.Equal(t, 11, MonthDiff(Date(2025, time.January, 1), Date(2025, time.December, 31)))
	assert.Equal(t, 13, MonthDiff(Date(2025, time.January, 15), Date(2026, time.February, 1)))
	assert.Equal(t, -1, MonthDiff(Date(2025, time.February, 1), Date(2025, time.January, 31)))

	assert.Equal(t, 12, MonthSpan(Date(2025, time.January, 1), Date(2025, time.December, 31)))
	assert.Equal(t, 1, MonthSpan(Date(2025, time.January, 1), Date(2025, time.January, 31)))
	assert.Equal(t, 0, MonthSpan(Date(2025, time.February, 1), Date(2025, time.January, 1)))
}

func TestCalendarYears(t *testing.T) {
	tests := []struct {
		name          string
		from          time.Time
		to            time.Time
		expectedYears int
		expectedRem   bool
	}{
		{"Exact two years", Date(2025, time.January, 15), Date(2027, time.January, 15), 2, false},
		{"Day short of two years", Date(2025, time.January, 15), Date(2027, time.January, 14), 1, true},
		{"Day past two years", Date(2025, time.January, 15), Date(2027, time.January, 16), 2, true},
		{"Exact one year", Date(2025, time.March, 1), Date(2026, time.March, 1), 1, false},
		{"Half a year", Date(2025, time.January, 1), Date(2025, time.July, 1), 0, true},
		{"Same day", Date(2025, time.January, 15), Date(2025, time.January, 15), 0, false},
		{"Leap-day start never reaches its anniversary", Date(2024, time.February, 29), Date(2025, time.February, 28), 0, true},
		{"Leap-day start on March 1", Date(2024, time.February, 29), Date(2025, time.March, 1), 1, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			years, remainder := CalendarYears(tc.from, tc.to)
			assert.Equal(t, tc.expectedYears, years)
			assert.Equal(t, tc.expectedRem, remainder)
		})
	}
}

func TestFormatters(t *testing.T) {
	d := Date(2025, time.August, 7)
	assert.Equal(t, "2025-08-07", ToISODate(d))
	assert.Equal(t, "2025-08", ToMonthLabel(d))
}
