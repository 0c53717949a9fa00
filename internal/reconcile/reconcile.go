// Package reconcile catches a snapshot up with the calendar: monthly shield
// refills, shield cover for missed days and the lifecycle of repeating tasks.
package reconcile

import (
	"fmt"
	"time"

	"github.com/alexanderramin/streakhq/internal/domain"
)

// Report describes what a reconciliation run changed.
type Report struct {
	ShieldsRefilled bool
	ShieldDays      []domain.StreakCheckIn
	StreaksBroken   []string
	TasksReopened   []string
	VisitAdvanced   bool
}

// Changed reports whether any step modified the snapshot.
func (r Report) Changed() bool {
	return r.ShieldsRefilled || r.VisitAdvanced || len(r.ShieldDays) > 0 ||
		len(r.StreaksBroken) > 0 || len(r.TasksReopened) > 0
}

type step func(s *domain.Snapshot, today string, r *Report)

var steps = []step{
	refillShields,
	coverMissedDays,
	breakStaleStreaks,
	reopenRepeatingTasks,
}

// Reconcile returns s caught up to now. When nothing changed it returns s
// itself and false, so callers can skip persisting.
func Reconcile(s domain.Snapshot, now time.Time) (domain.Snapshot, bool) {
	out, r := Run(s, now)
	return out, r.Changed()
}

// Run is Reconcile with a description of each change.
func Run(s domain.Snapshot, now time.Time) (domain.Snapshot, Report) {
	var r Report
	work := s.Clone()
	if work.Shields == nil {
		work.Shields = map[string]int{}
	}
	today := domain.Today(now)
	for _, st := range steps {
		st(&work, today, &r)
	}
	if !r.Changed() {
		return s, r
	}
	return work, r
}

func refillShields(s *domain.Snapshot, today string, r *Report) {
	month := today[:len(domain.MonthLayout)]
	if s.LastShieldRefill == month {
		return
	}
	for _, c := range s.Categories {
		s.Shields[c.ID] += domain.MonthlyShieldRefill
	}
	s.LastShieldRefill = month
	r.ShieldsRefilled = true
}

func coverMissedDays(s *domain.Snapshot, today string, r *Report) {
	gap, err := domain.DaysBetween(s.LastVisitDate, today)
	if err != nil {
		// An unreadable visit date is treated as a visit today.
		s.LastVisitDate = today
		r.VisitAdvanced = true
		return
	}
	if gap == 0 {
		return
	}
	if gap < 0 {
		// A visit date ahead of the clock (skew, or data from another
		// device) is pulled back to today without covering anything.
		s.LastVisitDate = today
		r.VisitAdvanced = true
		return
	}

	start := s.LastVisitDate
	if gap > domain.ShieldLookbackDays {
		start = domain.AddDays(today, -domain.ShieldLookbackDays)
	}
	yesterday := domain.AddDays(today, -1)

	idx := newDayIndex(s.Streaks)
	for d := start; d <= yesterday; d = domain.AddDays(d, 1) {
		prev := domain.AddDays(d, -1)
		for _, c := range s.Categories {
			if idx.has(c.ID, d) || !idx.active(c.ID, prev) || s.Shields[c.ID] <= 0 {
				continue
			}
			entry := ShieldCheckIn(c.ID, d)
			s.Streaks = append(s.Streaks, entry)
			idx.add(entry)
			s.Shields[c.ID]--
			r.ShieldDays = append(r.ShieldDays, entry)
		}
	}
	s.LastVisitDate = today
	r.VisitAdvanced = true
}

// ShieldCheckIn builds the entry recorded when a shield covers a missed day.
// The id is derived from the category and day so replays never duplicate it.
func ShieldCheckIn(category, dateISO string) domain.StreakCheckIn {
	return domain.StreakCheckIn{
		ID:       fmt.Sprintf("shield-%s-%s", category, dateISO),
		Category: category,
		DateISO:  dateISO,
		IsShield: true,
		Source:   domain.CheckInShield,
		Note:     domain.ShieldNote,
	}
}

func breakStaleStreaks(s *domain.Snapshot, today string, r *Report) {
	for i := range s.Tasks {
		t := &s.Tasks[i]
		if !t.Repeating() || t.Streak <= 0 || t.LastCompletedDateISO == "" {
			continue
		}
		periods, err := domain.PeriodsBetween(t.RepeatFrequency, t.LastCompletedDateISO, today)
		if err != nil || periods <= 1 {
			continue
		}
		t.Streak = 0
		r.StreaksBroken = append(r.StreaksBroken, t.ID)
	}
}

func reopenRepeatingTasks(s *domain.Snapshot, today string, r *Report) {
	for i := range s.Tasks {
		t := &s.Tasks[i]
		if !t.Repeating() || !t.Done {
			continue
		}
		if t.LastCompletedDateISO != "" {
			periods, err := domain.PeriodsBetween(t.RepeatFrequency, t.LastCompletedDateISO, today)
			if err == nil && periods == 0 {
				continue
			}
		}
		t.Done = false
		t.Status = domain.TaskToday
		t.DateISO = ""
		r.TasksReopened = append(r.TasksReopened, t.ID)
	}
}

type dayKey struct{ category, date string }

// dayIndex answers check-in lookups during backfill without rescanning.
type dayIndex map[dayKey]bool

func newDayIndex(entries []domain.StreakCheckIn) dayIndex {
	idx := make(dayIndex, len(entries))
	for _, e := range entries {
		idx.add(e)
	}
	return idx
}

func (idx dayIndex) add(e domain.StreakCheckIn) {
	k := dayKey{e.Category, e.DateISO}
	idx[k] = idx[k] || e.Active()
}

func (idx dayIndex) has(category, date string) bool {
	_, ok := idx[dayKey{category, date}]
	return ok
}

func (idx dayIndex) active(category, date string) bool {
	return idx[dayKey{category, date}]
}
