package ops

import (
	"fmt"

	"github.com/alexanderramin/streakhq/internal/domain"
)

// ToggleMiniTask cycles a category's day between done and absent. Only a
// done day is removed; a shield day or an inactive entry is promoted to a
// genuine completion.
func ToggleMiniTask(s domain.Snapshot, category, dateISO, note string) (Result, error) {
	if _, ok := s.Category(category); !ok {
		return Result{}, fmt.Errorf("toggling %q: %w", category, ErrCategoryNotFound)
	}
	if _, err := domain.ParseDate(dateISO); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	r := begin(s)
	out := &r.Snapshot
	for i, c := range out.Streaks {
		if c.Category != category || c.DateISO != dateISO {
			continue
		}
		if !c.MiniTaskDone {
			c.IsShield = false
			c.MiniTaskDone = true
			c.Source = domain.CheckInMini
			c.Note = note
			out.Streaks[i] = c
			r.effect(domain.EffectStreak, category, 0)
			r.notice("Streak secured for %s!", category)
			return *r, nil
		}
		out.Streaks = append(out.Streaks[:i], out.Streaks[i+1:]...)
		return *r, nil
	}

	out.Streaks = append(out.Streaks, domain.StreakCheckIn{
		ID:           newID(),
		Category:     category,
		DateISO:      dateISO,
		MiniTaskDone: true,
		Source:       domain.CheckInMini,
		Note:         note,
	})
	r.effect(domain.EffectStreak, category, 0)
	r.notice("Streak secured for %s!", category)
	return *r, nil
}
