package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/streakhq/internal/domain"
)

var testIDCounter atomic.Int64

func nextID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, testIDCounter.Add(1))
}

// At returns 09:00 UTC on the given yyyy-MM-dd day.
func At(dateISO string) time.Time {
	t, err := time.Parse(domain.DateLayout, dateISO)
	if err != nil {
		panic(err)
	}
	return t.Add(9 * time.Hour)
}

// Snapshot options
type SnapshotOption func(*domain.Snapshot)

// WithCategories replaces the seed categories. Each gets the initial shield
// count and a single mini-task.
func WithCategories(ids ...string) SnapshotOption {
	return func(s *domain.Snapshot) {
		s.Categories = nil
		s.Shields = map[string]int{}
		s.Settings.DefaultMiniTasksByCategory = map[string][]string{}
		for i, id := range ids {
			s.Categories = append(s.Categories, domain.CategoryDef{
				ID: id, Name: id, Icon: domain.NewCategoryIcon,
				ColorTheme: domain.ColorThemes[i%len(domain.ColorThemes)],
			})
			s.Shields[id] = domain.InitialShields
			s.Settings.DefaultMiniTasksByCategory[id] = []string{domain.NewCategoryMiniTask}
		}
	}
}

func WithShields(category string, n int) SnapshotOption {
	return func(s *domain.Snapshot) {
		s.Shields[category] = n
	}
}

// WithCheckIn adds a genuine mini-task check-in.
func WithCheckIn(category, dateISO string) SnapshotOption {
	return func(s *domain.Snapshot) {
		s.Streaks = append(s.Streaks, domain.StreakCheckIn{
			ID: nextID("checkin"), Category: category, DateISO: dateISO,
			MiniTaskDone: true, Source: domain.CheckInMini,
		})
	}
}

// WithShieldDay adds a shield-covered check-in.
func WithShieldDay(category, dateISO string) SnapshotOption {
	return func(s *domain.Snapshot) {
		s.Streaks = append(s.Streaks, domain.StreakCheckIn{
			ID: nextID("shield"), Category: category, DateISO: dateISO,
			IsShield: true, Source: domain.CheckInShield, Note: domain.ShieldNote,
		})
	}
}

func WithTask(t domain.XpTask) SnapshotOption {
	return func(s *domain.Snapshot) {
		s.Tasks = append(s.Tasks, t)
	}
}

func WithProject(p domain.Project) SnapshotOption {
	return func(s *domain.Snapshot) {
		s.Projects = append(s.Projects, p)
	}
}

func WithLedger(e domain.RewardLedgerEntry) SnapshotOption {
	return func(s *domain.Snapshot) {
		s.Ledger = append([]domain.RewardLedgerEntry{e}, s.Ledger...)
	}
}

func WithXP(total, pending int) SnapshotOption {
	return func(s *domain.Snapshot) {
		s.TotalXP = total
		s.PendingXP = pending
	}
}

func WithLastVisit(dateISO string) SnapshotOption {
	return func(s *domain.Snapshot) {
		s.LastVisitDate = dateISO
	}
}

func WithSettings(fn func(*domain.Settings)) SnapshotOption {
	return func(s *domain.Snapshot) {
		fn(&s.Settings)
	}
}

// NewTestSnapshot returns a seed snapshot for now with opts applied.
func NewTestSnapshot(now time.Time, opts ...SnapshotOption) domain.Snapshot {
	s := domain.NewSeed(now)
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Task options
type TaskOption func(*domain.XpTask)

func WithRepeat(freq domain.RepeatFrequency, lastCompleted string, streak int) TaskOption {
	return func(t *domain.XpTask) {
		t.RepeatFrequency = freq
		t.LastCompletedDateISO = lastCompleted
		t.Streak = streak
	}
}

func WithTaskProject(projectID string) TaskOption {
	return func(t *domain.XpTask) {
		t.ProjectID = projectID
	}
}

// WithDoneOn marks the task completed on dateISO.
func WithDoneOn(dateISO string) TaskOption {
	return func(t *domain.XpTask) {
		t.Done = true
		t.Status = domain.TaskDone
		t.DateISO = dateISO
	}
}

func WithTaskStatus(st domain.TaskStatus) TaskOption {
	return func(t *domain.XpTask) {
		t.Status = st
	}
}

func WithTaskID(id string) TaskOption {
	return func(t *domain.XpTask) {
		t.ID = id
	}
}

func NewTestTask(title, category string, xp int, opts ...TaskOption) domain.XpTask {
	t := domain.XpTask{
		ID:              nextID("task"),
		Title:           title,
		Category:        category,
		Status:          domain.TaskToday,
		DurationMinutes: 30,
		XP:              xp,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func NewTestProject(id, title, category string) domain.Project {
	return domain.Project{
		ID:           id,
		Title:        title,
		Category:     category,
		Status:       domain.ProjectActive,
		CreatedAtISO: "2026-01-01",
		WorkDates:    []string{},
	}
}
