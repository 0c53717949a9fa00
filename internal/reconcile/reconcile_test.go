package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/streakhq/internal/domain"
	"github.com/alexanderramin/streakhq/internal/testutil"
)

func TestReconcile_NoChangeReturnsInput(t *testing.T) {
	now := testutil.At("2026-05-10")
	s := testutil.NewTestSnapshot(now, testutil.WithCategories("Health"))

	out, changed := Reconcile(s, now)
	assert.False(t, changed)
	assert.Equal(t, s, out)
}

func TestReconcile_Idempotent(t *testing.T) {
	now := testutil.At("2026-05-10")
	daily := testutil.NewTestTask("Stretch", "Health", 5,
		testutil.WithRepeat(domain.RepeatDaily, "2026-05-07", 4), testutil.WithDoneOn("2026-05-07"))
	s := testutil.NewTestSnapshot(testutil.At("2026-04-20"),
		testutil.WithCategories("Health", "Finance"),
		testutil.WithCheckIn("Health", "2026-05-06"),
		testutil.WithLastVisit("2026-05-07"),
		testutil.WithTask(daily),
	)

	once, changed := Reconcile(s, now)
	require.True(t, changed)

	twice, changed := Reconcile(once, now)
	assert.False(t, changed)
	assert.Equal(t, once, twice)
}

func TestReconcile_DoesNotMutateInput(t *testing.T) {
	now := testutil.At("2026-05-10")
	s := testutil.NewTestSnapshot(testutil.At("2026-04-30"),
		testutil.WithCategories("Health"),
		testutil.WithCheckIn("Health", "2026-04-29"),
		testutil.WithLastVisit("2026-04-30"),
	)
	before := s.Clone()

	_, changed := Reconcile(s, now)
	require.True(t, changed)
	assert.Equal(t, before, s)
}

func TestRefill_AddsFiveOnNewMonth(t *testing.T) {
	now := testutil.At("2026-06-01")
	s := testutil.NewTestSnapshot(testutil.At("2026-05-31"),
		testutil.WithCategories("Health", "Finance"),
		testutil.WithShields("Health", 3),
		testutil.WithLastVisit("2026-06-01"),
	)

	out, r := Run(s, now)
	assert.True(t, r.ShieldsRefilled)
	assert.Equal(t, 8, out.Shields["Health"])
	assert.Equal(t, 7, out.Shields["Finance"])
	assert.Equal(t, "2026-06", out.LastShieldRefill)
}

func TestCoverMissedDays_StreakContinuity(t *testing.T) {
	// Health was worked D-3..D-1 and missed on D. The first run after D
	// covers D with a shield.
	s := testutil.NewTestSnapshot(testutil.At("2026-05-10"),
		testutil.WithCategories("Health"),
		testutil.WithCheckIn("Health", "2026-05-07"),
		testutil.WithCheckIn("Health", "2026-05-08"),
		testutil.WithCheckIn("Health", "2026-05-09"),
		testutil.WithLastVisit("2026-05-10"),
	)
	now := testutil.At("2026-05-11")

	out, r := Run(s, now)
	require.Len(t, r.ShieldDays, 1)

	entry, ok := out.CheckIn("Health", "2026-05-10")
	require.True(t, ok)
	assert.True(t, entry.IsShield)
	assert.False(t, entry.MiniTaskDone)
	assert.Equal(t, domain.CheckInShield, entry.Source)
	assert.Equal(t, "shield-Health-2026-05-10", entry.ID)
	assert.Equal(t, domain.ShieldNote, entry.Note)

	assert.Equal(t, 1, out.Shields["Health"])
	assert.Equal(t, "2026-05-11", out.LastVisitDate)
	assert.Equal(t, 4, domain.StreakCount(out, "Health", "2026-05-11"))
}

func TestCoverMissedDays_ChainsUntilShieldsRunOut(t *testing.T) {
	s := testutil.NewTestSnapshot(testutil.At("2026-05-05"),
		testutil.WithCategories("Health"),
		testutil.WithShields("Health", 2),
		testutil.WithCheckIn("Health", "2026-05-04"),
		testutil.WithLastVisit("2026-05-05"),
	)

	out, r := Run(s, testutil.At("2026-05-10"))
	require.Len(t, r.ShieldDays, 2)
	_, ok := out.CheckIn("Health", "2026-05-05")
	assert.True(t, ok)
	_, ok = out.CheckIn("Health", "2026-05-06")
	assert.True(t, ok)
	_, ok = out.CheckIn("Health", "2026-05-07")
	assert.False(t, ok)
	assert.Zero(t, out.Shields["Health"])
}

func TestCoverMissedDays_NoStreakNoShield(t *testing.T) {
	s := testutil.NewTestSnapshot(testutil.At("2026-05-08"),
		testutil.WithCategories("Health", "Finance"),
		testutil.WithCheckIn("Finance", "2026-05-07"),
		testutil.WithLastVisit("2026-05-08"),
	)

	out, r := Run(s, testutil.At("2026-05-09"))
	require.Len(t, r.ShieldDays, 1)
	assert.Equal(t, "Finance", r.ShieldDays[0].Category)
	assert.Equal(t, domain.InitialShields, out.Shields["Health"])
}

func TestCoverMissedDays_ExistingEntryNotCovered(t *testing.T) {
	s := testutil.NewTestSnapshot(testutil.At("2026-05-08"),
		testutil.WithCategories("Health"),
		testutil.WithCheckIn("Health", "2026-05-07"),
		testutil.WithCheckIn("Health", "2026-05-08"),
		testutil.WithLastVisit("2026-05-08"),
	)

	out, r := Run(s, testutil.At("2026-05-09"))
	assert.Empty(t, r.ShieldDays)
	assert.Equal(t, domain.InitialShields, out.Shields["Health"])
}

func TestCoverMissedDays_NeverNegative(t *testing.T) {
	s := testutil.NewTestSnapshot(testutil.At("2026-05-01"),
		testutil.WithCategories("Health"),
		testutil.WithShields("Health", 0),
		testutil.WithCheckIn("Health", "2026-04-30"),
		testutil.WithLastVisit("2026-05-01"),
	)

	out, r := Run(s, testutil.At("2026-05-04"))
	assert.Empty(t, r.ShieldDays)
	assert.Zero(t, out.Shields["Health"])
}

func TestCoverMissedDays_LookbackBound(t *testing.T) {
	// A streak alive 20 days ago is too old to be rescued: the first
	// candidate day is today-7, whose previous day has no entry.
	s := testutil.NewTestSnapshot(testutil.At("2026-05-01"),
		testutil.WithCategories("Health"),
		testutil.WithShields("Health", 10),
		testutil.WithCheckIn("Health", "2026-04-19"),
		testutil.WithLastVisit("2026-04-20"),
	)

	out, r := Run(s, testutil.At("2026-05-10"))
	assert.Empty(t, r.ShieldDays)
	assert.Equal(t, 10, out.Shields["Health"])
	assert.Equal(t, "2026-05-10", out.LastVisitDate)
}

func TestCoverMissedDays_LookbackStartCoveredWhenPrevActive(t *testing.T) {
	s := testutil.NewTestSnapshot(testutil.At("2026-05-01"),
		testutil.WithCategories("Health"),
		testutil.WithShields("Health", 10),
		testutil.WithCheckIn("Health", "2026-05-02"),
		testutil.WithLastVisit("2026-04-25"),
	)

	out, r := Run(s, testutil.At("2026-05-10"))
	// Window is 05-03..05-09, previous day 05-02 is active.
	require.Len(t, r.ShieldDays, 7)
	assert.Equal(t, "2026-05-03", r.ShieldDays[0].DateISO)
	assert.Equal(t, "2026-05-09", r.ShieldDays[6].DateISO)
	assert.Equal(t, 3, out.Shields["Health"])
}

func TestCoverMissedDays_UnparseableVisitDate(t *testing.T) {
	s := testutil.NewTestSnapshot(testutil.At("2026-05-10"),
		testutil.WithCategories("Health"),
		testutil.WithLastVisit("yesterday-ish"),
	)

	out, changed := Reconcile(s, testutil.At("2026-05-10"))
	assert.True(t, changed)
	assert.Equal(t, "2026-05-10", out.LastVisitDate)
	assert.Empty(t, out.Streaks)
}

func TestCoverMissedDays_FutureVisitDatePulledBack(t *testing.T) {
	s := testutil.NewTestSnapshot(testutil.At("2026-05-10"),
		testutil.WithCategories("Health"),
		testutil.WithShields("Health", 3),
		testutil.WithLastVisit("2026-05-20"),
	)

	out, changed := Reconcile(s, testutil.At("2026-05-10"))
	assert.True(t, changed)
	assert.Equal(t, "2026-05-10", out.LastVisitDate)
	assert.Empty(t, out.Streaks)
	assert.Equal(t, 3, out.Shields["Health"])

	_, changed = Reconcile(out, testutil.At("2026-05-10"))
	assert.False(t, changed)
}

func TestReopen_DailyTaskCompletedYesterday(t *testing.T) {
	task := testutil.NewTestTask("Stretch", "Health", 5,
		testutil.WithRepeat(domain.RepeatDaily, "2026-05-09", 3), testutil.WithDoneOn("2026-05-09"))
	s := testutil.NewTestSnapshot(testutil.At("2026-05-10"),
		testutil.WithCategories("Health"),
		testutil.WithTask(task),
	)

	out, changed := Reconcile(s, testutil.At("2026-05-10"))
	require.True(t, changed)
	got := out.Tasks[0]
	assert.False(t, got.Done)
	assert.Equal(t, domain.TaskToday, got.Status)
	assert.Empty(t, got.DateISO)
	assert.Equal(t, 3, got.Streak)
}

func TestReopen_SamePeriodStaysDone(t *testing.T) {
	weekly := testutil.NewTestTask("Review", "Finance", 10,
		testutil.WithRepeat(domain.RepeatWeekly, "2026-05-04", 2), testutil.WithDoneOn("2026-05-04"))
	monthly := testutil.NewTestTask("Budget", "Finance", 10,
		testutil.WithRepeat(domain.RepeatMonthly, "2026-05-01", 2), testutil.WithDoneOn("2026-05-01"))
	s := testutil.NewTestSnapshot(testutil.At("2026-05-10"),
		testutil.WithCategories("Finance"),
		testutil.WithTask(weekly),
		testutil.WithTask(monthly),
	)

	_, changed := Reconcile(s, testutil.At("2026-05-10"))
	assert.False(t, changed)
}

func TestBreakStaleStreaks(t *testing.T) {
	tests := []struct {
		name      string
		freq      domain.RepeatFrequency
		last      string
		wantReset bool
	}{
		{"daily one day", domain.RepeatDaily, "2026-05-09", false},
		{"daily two days", domain.RepeatDaily, "2026-05-08", true},
		{"weekly previous week", domain.RepeatWeekly, "2026-05-03", false},
		{"weekly two weeks", domain.RepeatWeekly, "2026-04-26", true},
		{"monthly previous month", domain.RepeatMonthly, "2026-04-01", false},
		{"monthly two months", domain.RepeatMonthly, "2026-03-31", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := testutil.NewTestTask("Repeat", "Health", 5, testutil.WithRepeat(tt.freq, tt.last, 4))
			s := testutil.NewTestSnapshot(testutil.At("2026-05-10"),
				testutil.WithCategories("Health"),
				testutil.WithTask(task),
			)

			out, r := Run(s, testutil.At("2026-05-10"))
			if tt.wantReset {
				assert.Zero(t, out.Tasks[0].Streak)
				assert.Equal(t, []string{task.ID}, r.StreaksBroken)
			} else {
				assert.Equal(t, 4, out.Tasks[0].Streak)
				assert.Empty(t, r.StreaksBroken)
			}
		})
	}
}
