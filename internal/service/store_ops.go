package service

import (
	"context"
	"time"

	"github.com/alexanderramin/streakhq/internal/domain"
	"github.com/alexanderramin/streakhq/internal/ops"
)

func (s *Store) AddCategory(ctx context.Context, name string) (ops.Result, error) {
	return s.apply(ctx, "add-category", map[string]any{"name": name}, func(snap domain.Snapshot, _ time.Time) (ops.Result, error) {
		return ops.AddCategory(snap, name)
	})
}

func (s *Store) RenameCategory(ctx context.Context, oldID, newName string) (ops.Result, error) {
	fields := map[string]any{"category": oldID, "name": newName}
	return s.apply(ctx, "rename-category", fields, func(snap domain.Snapshot, _ time.Time) (ops.Result, error) {
		return ops.RenameCategory(snap, oldID, newName)
	})
}

// DeleteCategory removes a category and everything that belongs to it.
// Callers confirm with the user first.
func (s *Store) DeleteCategory(ctx context.Context, id string) (ops.Result, error) {
	return s.apply(ctx, "delete-category", map[string]any{"category": id}, func(snap domain.Snapshot, _ time.Time) (ops.Result, error) {
		return ops.DeleteCategory(snap, id)
	})
}

// ToggleMiniTask flips a category's mini-task for dateISO, or for today when
// dateISO is empty.
func (s *Store) ToggleMiniTask(ctx context.Context, category, dateISO, note string) (ops.Result, error) {
	fields := map[string]any{"category": category, "date": dateISO}
	return s.apply(ctx, "toggle-mini-task", fields, func(snap domain.Snapshot, now time.Time) (ops.Result, error) {
		return ops.ToggleMiniTask(snap, category, domain.CoalesceStr(dateISO, domain.Today(now)), note)
	})
}

func (s *Store) AddTask(ctx context.Context, in ops.TaskInput) (ops.Result, error) {
	return s.apply(ctx, "add-task", map[string]any{"category": in.Category}, func(snap domain.Snapshot, _ time.Time) (ops.Result, error) {
		return ops.AddTask(snap, in)
	})
}

func (s *Store) AddTasks(ctx context.Context, inputs []ops.TaskInput) (ops.Result, error) {
	return s.apply(ctx, "add-tasks", map[string]any{"count": len(inputs)}, func(snap domain.Snapshot, _ time.Time) (ops.Result, error) {
		return ops.AddTasks(snap, inputs)
	})
}

func (s *Store) UpdateTask(ctx context.Context, id string, patch ops.TaskPatch) (ops.Result, error) {
	return s.apply(ctx, "update-task", map[string]any{"task": id}, func(snap domain.Snapshot, _ time.Time) (ops.Result, error) {
		return ops.UpdateTask(snap, id, patch)
	})
}

func (s *Store) DeleteTask(ctx context.Context, id string) (ops.Result, error) {
	return s.apply(ctx, "delete-task", map[string]any{"task": id}, func(snap domain.Snapshot, _ time.Time) (ops.Result, error) {
		return ops.DeleteTask(snap, id)
	})
}

func (s *Store) ToggleTaskDone(ctx context.Context, id string) (ops.Result, error) {
	return s.apply(ctx, "toggle-task", map[string]any{"task": id}, func(snap domain.Snapshot, now time.Time) (ops.Result, error) {
		return ops.ToggleTaskDone(snap, id, now)
	})
}

func (s *Store) AddProject(ctx context.Context, in ops.ProjectInput) (ops.Result, error) {
	return s.apply(ctx, "add-project", map[string]any{"category": in.Category}, func(snap domain.Snapshot, now time.Time) (ops.Result, error) {
		return ops.AddProject(snap, in, now)
	})
}

func (s *Store) SetProjectStatus(ctx context.Context, id string, status domain.ProjectStatus) (ops.Result, error) {
	fields := map[string]any{"project": id, "status": string(status)}
	return s.apply(ctx, "set-project-status", fields, func(snap domain.Snapshot, _ time.Time) (ops.Result, error) {
		return ops.SetProjectStatus(snap, id, status)
	})
}

func (s *Store) DeleteProject(ctx context.Context, id string) (ops.Result, error) {
	return s.apply(ctx, "delete-project", map[string]any{"project": id}, func(snap domain.Snapshot, _ time.Time) (ops.Result, error) {
		return ops.DeleteProject(snap, id)
	})
}

func (s *Store) PostXPToBank(ctx context.Context) (ops.Result, error) {
	return s.apply(ctx, "post-xp", map[string]any{}, ops.PostXPToBank)
}

func (s *Store) AddLedgerEntry(ctx context.Context, in ops.LedgerInput) (ops.Result, error) {
	fields := map[string]any{"type": string(in.Type), "amount": in.EuroAmount}
	return s.apply(ctx, "add-ledger-entry", fields, func(snap domain.Snapshot, now time.Time) (ops.Result, error) {
		return ops.AddLedgerEntry(snap, in, now)
	})
}

func (s *Store) BuyShield(ctx context.Context, category string) (ops.Result, error) {
	return s.apply(ctx, "buy-shield", map[string]any{"category": category}, func(snap domain.Snapshot, now time.Time) (ops.Result, error) {
		return ops.BuyShield(snap, category, now)
	})
}

func (s *Store) UpdateSettings(ctx context.Context, next domain.Settings) (ops.Result, error) {
	return s.apply(ctx, "update-settings", map[string]any{}, func(snap domain.Snapshot, _ time.Time) (ops.Result, error) {
		return ops.UpdateSettings(snap, next)
	})
}
