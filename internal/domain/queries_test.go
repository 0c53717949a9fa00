package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkIn(category, date string, done, shield bool) StreakCheckIn {
	return StreakCheckIn{ID: category + date, Category: category, DateISO: date, MiniTaskDone: done, IsShield: shield}
}

func TestStreakCount_CountsShieldDays(t *testing.T) {
	s := NewSeed(time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC))
	s.Streaks = []StreakCheckIn{
		checkIn("Health", "2026-05-07", true, false),
		checkIn("Health", "2026-05-08", true, false),
		checkIn("Health", "2026-05-09", false, true),
		checkIn("Health", "2026-05-10", true, false),
	}
	assert.Equal(t, 4, StreakCount(s, "Health", "2026-05-10"))
}

func TestStreakCount_TodayPendingStartsFromYesterday(t *testing.T) {
	s := NewSeed(time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC))
	s.Streaks = []StreakCheckIn{
		checkIn("Health", "2026-05-08", true, false),
		checkIn("Health", "2026-05-09", true, false),
	}
	assert.Equal(t, 2, StreakCount(s, "Health", "2026-05-10"))
	assert.Equal(t, 0, StreakCount(s, "Finance", "2026-05-10"))
}

func TestStreakCount_GapBreaks(t *testing.T) {
	s := NewSeed(time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC))
	s.Streaks = []StreakCheckIn{
		checkIn("Health", "2026-05-06", true, false),
		checkIn("Health", "2026-05-08", true, false),
		checkIn("Health", "2026-05-09", true, false),
		checkIn("Health", "2026-05-10", true, false),
	}
	assert.Equal(t, 3, StreakCount(s, "Health", "2026-05-10"))
}

func TestHistory_OldestFirst(t *testing.T) {
	s := NewSeed(time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC))
	s.Streaks = []StreakCheckIn{
		checkIn("Health", "2026-05-04", true, false),
		checkIn("Health", "2026-05-09", false, true),
	}
	h := History(s, "Health", "2026-05-10", 7)
	require.Len(t, h, 7)
	assert.Equal(t, "2026-05-04", h[0].DateISO)
	assert.True(t, h[0].Done)
	assert.True(t, h[5].Shield)
	assert.Equal(t, "2026-05-10", h[6].DateISO)
	assert.False(t, h[6].Done)
}

func TestSpendAllowed_GateThreshold(t *testing.T) {
	s := NewSeed(time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC))
	today := "2026-05-10"
	for _, c := range []string{"Health", "Finance", "Admin", "Physics"} {
		s.Streaks = append(s.Streaks, checkIn(c, today, true, false))
	}
	// Shield days never unlock spending.
	s.Streaks = append(s.Streaks, checkIn("Research", today, false, true))
	assert.Equal(t, 4, CategoriesDoneToday(s, today))
	assert.False(t, SpendAllowed(s, today))

	s.Streaks = append(s.Streaks, checkIn("Languages", today, true, false))
	assert.True(t, SpendAllowed(s, today))

	s.Streaks = nil
	s.Settings.SpendGateEnabled = false
	assert.True(t, SpendAllowed(s, today))
}

func TestBalance_AndPostedToday(t *testing.T) {
	s := NewSeed(time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC))
	s.Ledger = []RewardLedgerEntry{
		{ID: "3", DateISO: "2026-05-10", Type: LedgerSpend, EuroAmount: 12.5, Source: SourceManual},
		{ID: "2", DateISO: "2026-05-09", Type: LedgerEarn, EuroAmount: 40, Source: SourceXPPost},
		{ID: "1", DateISO: "2026-05-01", Type: LedgerEarn, EuroAmount: 10, Source: SourceManual},
	}
	assert.InDelta(t, 37.5, Balance(s), 0.0001)
	assert.False(t, PostedToday(s, "2026-05-10"))
	assert.True(t, PostedToday(s, "2026-05-09"))
}

func TestXPEarnedToday(t *testing.T) {
	s := NewSeed(time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC))
	s.Tasks = []XpTask{
		{ID: "a", XP: 20, Done: true, Status: TaskDone, DateISO: "2026-05-10"},
		{ID: "b", XP: 15, Done: true, Status: TaskDone, DateISO: "2026-05-09"},
		{ID: "c", XP: 30, Done: false, Status: TaskToday, DateISO: "2026-05-10"},
	}
	assert.Equal(t, 20, XPEarnedToday(s, "2026-05-10"))
}

func TestCompletionBonus(t *testing.T) {
	small := []XpTask{{XP: 20}, {XP: 30}, {XP: 50}}
	assert.Equal(t, 100, CompletionBonus(small))

	big := []XpTask{{XP: 400}, {XP: 333}}
	assert.Equal(t, 146, CompletionBonus(big))
}

func TestSnapshotClone_DoesNotShare(t *testing.T) {
	s := NewSeed(time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC))
	s.Projects = []Project{{ID: "p1", WorkDates: []string{"2026-05-01"}}}

	c := s.Clone()
	c.Shields["Health"] = 99
	c.Settings.DefaultMiniTasksByCategory["Health"][0] = "changed"
	c.Projects[0].WorkDates[0] = "changed"
	c.Categories[0].Name = "changed"

	assert.Equal(t, InitialShields, s.Shields["Health"])
	assert.Equal(t, "2 min mobility", s.Settings.DefaultMiniTasksByCategory["Health"][0])
	assert.Equal(t, "2026-05-01", s.Projects[0].WorkDates[0])
	assert.Equal(t, "Ophthalmology", s.Categories[0].Name)
}
