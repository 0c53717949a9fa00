package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToday_UsesNowLocation(t *testing.T) {
	berlin := time.FixedZone("CET", 3600)

	// 23:30 UTC is already the next day in Berlin.
	now := time.Date(2026, 3, 14, 23, 30, 0, 0, time.UTC).In(berlin)
	assert.Equal(t, "2026-03-15", Today(now))
	assert.Equal(t, "2026-03", CurrentMonth(now))
}

func TestAddDays_CrossesMonthAndYear(t *testing.T) {
	assert.Equal(t, "2026-03-01", AddDays("2026-02-28", 1))
	assert.Equal(t, "2025-12-31", AddDays("2026-01-01", -1))
	assert.Equal(t, "not-a-date", AddDays("not-a-date", 1))
}

func TestDaysBetween(t *testing.T) {
	n, err := DaysBetween("2026-03-28", "2026-03-30")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = DaysBetween("2026-03-30", "2026-03-28")
	require.NoError(t, err)
	assert.Equal(t, -2, n)

	_, err = DaysBetween("bad", "2026-03-28")
	assert.Error(t, err)
}

func TestPeriodsBetween(t *testing.T) {
	tests := []struct {
		name  string
		freq  RepeatFrequency
		last  string
		today string
		want  int
	}{
		{"daily same day", RepeatDaily, "2026-05-10", "2026-05-10", 0},
		{"daily yesterday", RepeatDaily, "2026-05-09", "2026-05-10", 1},
		{"daily gap", RepeatDaily, "2026-05-07", "2026-05-10", 3},
		{"weekly same week", RepeatWeekly, "2026-05-04", "2026-05-10", 0},
		{"weekly next week", RepeatWeekly, "2026-05-10", "2026-05-11", 1},
		{"weekly across year", RepeatWeekly, "2025-12-29", "2026-01-04", 0},
		{"weekly across year next", RepeatWeekly, "2025-12-31", "2026-01-05", 1},
		{"weekly gap", RepeatWeekly, "2026-04-20", "2026-05-10", 2},
		{"monthly same month", RepeatMonthly, "2026-05-01", "2026-05-31", 0},
		{"monthly across year", RepeatMonthly, "2025-12-31", "2026-01-01", 1},
		{"monthly gap", RepeatMonthly, "2025-11-30", "2026-01-01", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PeriodsBetween(tt.freq, tt.last, tt.today)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPeriodsBetween_UnknownFrequency(t *testing.T) {
	_, err := PeriodsBetween("yearly", "2026-01-01", "2026-02-01")
	assert.Error(t, err)
}
