package domain

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// Today formats now as a calendar day in now's own location.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// CurrentMonth formats now as yyyy-MM in now's own location.
func CurrentMonth(now time.Time) string {
	return now.Format(MonthLayout)
}

// ParseDate parses a yyyy-MM-dd calendar day. The result is midnight UTC so
// that day arithmetic never crosses a DST boundary.
func ParseDate(dateISO string) (time.Time, error) {
	t, err := time.Parse(DateLayout, dateISO)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", dateISO, err)
	}
	return t, nil
}

// AddDays shifts a calendar day by n days. Unparseable input is returned as is.
func AddDays(dateISO string, n int) string {
	t, err := ParseDate(dateISO)
	if err != nil {
		return dateISO
	}
	return t.AddDate(0, 0, n).Format(DateLayout)
}

// DaysBetween returns the number of calendar days from a to b (b - a).
func DaysBetween(a, b string) (int, error) {
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

// PeriodsBetween counts how many whole periods of freq separate the period
// containing last from the period containing today. Weeks start on Monday,
// months are calendar months.
func PeriodsBetween(freq RepeatFrequency, last, today string) (int, error) {
	tl, err := ParseDate(last)
	if err != nil {
		return 0, err
	}
	tt, err := ParseDate(today)
	if err != nil {
		return 0, err
	}
	switch freq {
	case RepeatDaily:
		return int(tt.Sub(tl).Hours() / 24), nil
	case RepeatWeekly:
		return int(weekStart(tt).Sub(weekStart(tl)).Hours() / (24 * 7)), nil
	case RepeatMonthly:
		return monthIndex(tt) - monthIndex(tl), nil
	default:
		return 0, fmt.Errorf("unknown repeat frequency %q", freq)
	}
}

func weekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}
