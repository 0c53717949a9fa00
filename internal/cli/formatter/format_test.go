package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/streakhq/internal/domain"
	"github.com/alexanderramin/streakhq/internal/ops"
	"github.com/alexanderramin/streakhq/internal/testutil"
)

const today = "2026-05-10"

func dashboardSnapshot() domain.Snapshot {
	return testutil.NewTestSnapshot(testutil.At(today),
		testutil.WithCategories("Health", "Work"),
		testutil.WithCheckIn("Health", "2026-05-08"),
		testutil.WithShieldDay("Health", "2026-05-09"),
		testutil.WithCheckIn("Health", today),
		testutil.WithShields("Work", 0),
		testutil.WithXP(120, 40),
		testutil.WithTask(testutil.NewTestTask("Write report", "Work", 30, testutil.WithTaskID("task-report-0001"))),
		testutil.WithTask(testutil.NewTestTask("Old idea", "Work", 10, testutil.WithTaskStatus(domain.TaskBacklog))),
		testutil.WithLedger(domain.RewardLedgerEntry{
			ID: "l1", DateISO: "2026-05-09", Type: domain.LedgerEarn, EuroAmount: 25,
			Source: domain.SourceXPPost, Notes: "XP Earned: 25",
		}),
	)
}

func TestFormatToday(t *testing.T) {
	out := stripANSI(FormatToday(dashboardSnapshot(), today))

	assert.Contains(t, out, "TODAY · 2026-05-10")
	assert.Contains(t, out, "Health")
	assert.Contains(t, out, "□□□□■◆■")
	assert.Contains(t, out, "◇ 0")
	assert.Contains(t, out, "40 XP")
	assert.Contains(t, out, "€25.00")
	assert.Contains(t, out, "[█░░░░] 1/5")
	assert.Contains(t, out, "Write report")
	assert.NotContains(t, out, "Old idea")
}

func TestFormatHistory_NewestFirstWithNotes(t *testing.T) {
	s := dashboardSnapshot()
	c, _ := s.Category("Health")

	out := stripANSI(FormatHistory(s, c, today, 3))

	assert.Contains(t, out, "streak 3")
	assert.Contains(t, out, domain.ShieldNote)
	assert.Less(t, strings.Index(out, "2026-05-10"), strings.Index(out, "2026-05-08"))
}

func TestFormatTaskList_ShowsProjectAndRepeat(t *testing.T) {
	s := testutil.NewTestSnapshot(testutil.At(today),
		testutil.WithCategories("Work"),
		testutil.WithProject(testutil.NewTestProject("p1", "Launch", "Work")),
	)
	tasks := []domain.XpTask{
		testutil.NewTestTask("Stand-up", "Work", 5, testutil.WithRepeat(domain.RepeatDaily, "2026-05-09", 2)),
		testutil.NewTestTask("Ship it", "Work", 50, testutil.WithTaskProject("p1"), testutil.WithDoneOn(today)),
	}

	out := stripANSI(FormatTaskList(s, tasks))

	assert.Contains(t, out, "↻ daily ×2")
	assert.Contains(t, out, "· Launch")
	assert.Contains(t, out, "✔ Done")
	assert.Contains(t, out, "50 XP")
}

func TestFormatProjectList_CountsLinkedTasks(t *testing.T) {
	s := testutil.NewTestSnapshot(testutil.At(today),
		testutil.WithCategories("Work"),
		testutil.WithProject(testutil.NewTestProject("p1", "Launch", "Work")),
		testutil.WithTask(testutil.NewTestTask("a", "Work", 5, testutil.WithTaskProject("p1"), testutil.WithDoneOn(today))),
		testutil.WithTask(testutil.NewTestTask("b", "Work", 5, testutil.WithTaskProject("p1"))),
	)

	out := stripANSI(FormatProjectList(s))

	assert.Contains(t, out, "Launch")
	assert.Contains(t, out, "1/2")
	assert.Contains(t, out, "● Active")
}

func TestFormatLedger_SignsAndLimit(t *testing.T) {
	entries := []domain.RewardLedgerEntry{
		{DateISO: today, Type: domain.LedgerSpend, EuroAmount: 5, Source: domain.SourceManual, Notes: "coffee"},
		{DateISO: "2026-05-09", Type: domain.LedgerEarn, EuroAmount: 25, Source: domain.SourceXPPost},
	}

	out := stripANSI(FormatLedger(entries, 1))

	assert.Contains(t, out, "-€5.00")
	assert.Contains(t, out, "coffee")
	assert.NotContains(t, out, "€25.00")
}

func TestFormatBalance(t *testing.T) {
	out := stripANSI(FormatBalance(dashboardSnapshot(), today))

	assert.Contains(t, out, "€25.00")
	assert.Contains(t, out, "(≈ €40.00)")
	assert.Contains(t, out, "locked")
	assert.Contains(t, out, "not yet")
}

func TestFormatResult(t *testing.T) {
	res := ops.Result{
		Effects: []domain.Effect{
			{Kind: domain.EffectXP, Amount: 30},
			{Kind: domain.EffectProjectCompleted, Amount: 100},
			{Kind: domain.EffectGeneral},
		},
		Notices: []string{"Task \"x\" done"},
	}

	out := stripANSI(FormatResult(res))

	assert.Contains(t, out, "+30 XP")
	assert.Contains(t, out, "+100 XP bonus")
	assert.Contains(t, out, `Task "x" done`)
	assert.Empty(t, FormatResult(ops.Result{}))
}

func TestFormatSettings_MasksKey(t *testing.T) {
	st := domain.DefaultSettings()
	st.GeminiAPIKey = "sk-secret-1234"

	out := stripANSI(FormatSettings(st))

	assert.Contains(t, out, "••••1234")
	assert.NotContains(t, out, "secret")
	assert.Contains(t, out, "gate-threshold")
}
