package migrate

import (
	"time"

	"github.com/alexanderramin/streakhq/internal/domain"
)

// Normalize repairs invariant violations a hand-edited or partially written
// snapshot may carry: duplicate category ids, more than one check-in per
// (category, day), done tasks without a Done status or date, negative
// counters and nil collections.
func Normalize(s domain.Snapshot, now time.Time) domain.Snapshot {
	out := s.Clone()

	if out.LastVisitDate == "" {
		out.LastVisitDate = domain.Today(now)
	}
	if out.LastShieldRefill == "" {
		out.LastShieldRefill = domain.CurrentMonth(now)
	}
	out.TotalXP = domain.ClampNonNegative(out.TotalXP)
	out.PendingXP = domain.ClampNonNegative(out.PendingXP)

	out.Categories = uniqueCategories(out.Categories)
	out.Streaks = uniqueCheckIns(out.Streaks)

	for i := range out.Tasks {
		out.Tasks[i] = normalizeTask(out.Tasks[i], out.LastVisitDate)
	}
	for i := range out.Projects {
		if out.Projects[i].WorkDates == nil {
			out.Projects[i].WorkDates = []string{}
		}
		if out.Projects[i].Status == "" {
			out.Projects[i].Status = domain.ProjectActive
		}
	}
	if out.Shields == nil {
		out.Shields = map[string]int{}
	}
	if out.Settings.DefaultMiniTasksByCategory == nil {
		out.Settings.DefaultMiniTasksByCategory = map[string][]string{}
	}
	for k, v := range out.Shields {
		out.Shields[k] = domain.ClampNonNegative(v)
	}
	if out.Ledger == nil {
		out.Ledger = []domain.RewardLedgerEntry{}
	}
	if out.Tasks == nil {
		out.Tasks = []domain.XpTask{}
	}
	if out.Projects == nil {
		out.Projects = []domain.Project{}
	}
	return out
}

func normalizeTask(t domain.XpTask, fallbackDate string) domain.XpTask {
	if !domain.ValidTaskStatuses[t.Status] {
		t.Status = domain.TaskBacklog
	}
	if !domain.ValidRepeatFrequencies[t.RepeatFrequency] {
		t.RepeatFrequency = domain.RepeatNone
	}
	t.XP = domain.ClampNonNegative(t.XP)
	t.Streak = domain.ClampNonNegative(t.Streak)
	if t.Done {
		t.Status = domain.TaskDone
		t.DateISO = domain.CoalesceStr(t.DateISO, t.LastCompletedDateISO, fallbackDate)
	}
	return t
}

func uniqueCategories(in []domain.CategoryDef) []domain.CategoryDef {
	seen := make(map[string]bool, len(in))
	out := make([]domain.CategoryDef, 0, len(in))
	for _, c := range in {
		if c.ID == "" || seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		if c.Name == "" {
			c.Name = c.ID
		}
		out = append(out, c)
	}
	return out
}

// uniqueCheckIns keeps one check-in per (category, day), preferring a genuine
// completion over a shield and a shield over an inactive entry.
func uniqueCheckIns(in []domain.StreakCheckIn) []domain.StreakCheckIn {
	type key struct{ category, date string }
	pos := make(map[key]int, len(in))
	out := make([]domain.StreakCheckIn, 0, len(in))
	for _, c := range in {
		k := key{c.Category, c.DateISO}
		i, dup := pos[k]
		if !dup {
			pos[k] = len(out)
			out = append(out, c)
			continue
		}
		if checkInRank(c) > checkInRank(out[i]) {
			out[i] = c
		}
	}
	return out
}

func checkInRank(c domain.StreakCheckIn) int {
	switch {
	case c.Genuine():
		return 2
	case c.Active():
		return 1
	default:
		return 0
	}
}
