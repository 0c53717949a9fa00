package ops

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/streakhq/internal/domain"
)

// TaskInput carries the user-editable fields of a new task.
type TaskInput struct {
	Title           string                 `json:"title"`
	Category        string                 `json:"category"`
	ProjectID       string                 `json:"projectId,omitempty"`
	Status          domain.TaskStatus      `json:"status,omitempty"`
	DurationMinutes int                    `json:"durationMinutes"`
	XP              int                    `json:"xp"`
	DateISO         string                 `json:"dateISO,omitempty"`
	Notes           string                 `json:"notes,omitempty"`
	RepeatFrequency domain.RepeatFrequency `json:"repeatFrequency,omitempty"`
}

// TaskPatch updates the non-nil fields of an existing task. Completion is
// changed only through ToggleTaskDone.
type TaskPatch struct {
	Title           *string                 `json:"title,omitempty"`
	Category        *string                 `json:"category,omitempty"`
	ProjectID       *string                 `json:"projectId,omitempty"`
	Status          *domain.TaskStatus      `json:"status,omitempty"`
	DurationMinutes *int                    `json:"durationMinutes,omitempty"`
	XP              *int                    `json:"xp,omitempty"`
	DateISO         *string                 `json:"dateISO,omitempty"`
	Notes           *string                 `json:"notes,omitempty"`
	RepeatFrequency *domain.RepeatFrequency `json:"repeatFrequency,omitempty"`
}

// AddTask appends one task in the Backlog unless another status is given.
func AddTask(s domain.Snapshot, in TaskInput) (Result, error) {
	t, err := newTask(s, in)
	if err != nil {
		return Result{}, err
	}
	r := begin(s)
	r.Snapshot.Tasks = append(r.Snapshot.Tasks, t)
	r.notice("Task %q added", t.Title)
	return *r, nil
}

// AddTasks appends several tasks at once. Nothing is added if any input is
// invalid.
func AddTasks(s domain.Snapshot, inputs []TaskInput) (Result, error) {
	tasks := make([]domain.XpTask, 0, len(inputs))
	for i, in := range inputs {
		t, err := newTask(s, in)
		if err != nil {
			return Result{}, fmt.Errorf("task %d: %w", i+1, err)
		}
		tasks = append(tasks, t)
	}
	r := begin(s)
	if len(tasks) == 0 {
		return *r, nil
	}
	r.Snapshot.Tasks = append(r.Snapshot.Tasks, tasks...)
	r.effect(domain.EffectGeneral, "", 0)
	r.notice("Added %d tasks", len(tasks))
	return *r, nil
}

func newTask(s domain.Snapshot, in TaskInput) (domain.XpTask, error) {
	t := domain.XpTask{
		ID:              newID(),
		Title:           strings.TrimSpace(in.Title),
		Category:        in.Category,
		ProjectID:       in.ProjectID,
		Status:          in.Status,
		DurationMinutes: in.DurationMinutes,
		XP:              in.XP,
		DateISO:         in.DateISO,
		Notes:           in.Notes,
		RepeatFrequency: in.RepeatFrequency,
	}
	if t.Status == "" {
		t.Status = domain.TaskBacklog
	}
	if t.Status == domain.TaskDone {
		return domain.XpTask{}, fmt.Errorf("%w: new tasks cannot start as Done", ErrInvalidTask)
	}
	if err := validateTask(s, t); err != nil {
		return domain.XpTask{}, err
	}
	return t, nil
}

func validateTask(s domain.Snapshot, t domain.XpTask) error {
	if t.Title == "" {
		return ErrEmptyName
	}
	if _, ok := s.Category(t.Category); !ok {
		return fmt.Errorf("task %q: %w", t.Title, ErrCategoryNotFound)
	}
	if t.ProjectID != "" && s.ProjectIndex(t.ProjectID) < 0 {
		return fmt.Errorf("task %q: %w", t.Title, ErrProjectNotFound)
	}
	if !domain.ValidTaskStatuses[t.Status] {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTask, t.Status)
	}
	if !domain.ValidRepeatFrequencies[t.RepeatFrequency] {
		return fmt.Errorf("%w: unknown repeat frequency %q", ErrInvalidTask, t.RepeatFrequency)
	}
	if t.XP <= 0 {
		return fmt.Errorf("%w: xp must be positive", ErrInvalidTask)
	}
	if t.DurationMinutes < 0 {
		return fmt.Errorf("%w: duration must not be negative", ErrInvalidTask)
	}
	if t.DateISO != "" {
		if _, err := domain.ParseDate(t.DateISO); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidDate, err)
		}
	}
	return nil
}

// UpdateTask applies p to the task with id.
func UpdateTask(s domain.Snapshot, id string, p TaskPatch) (Result, error) {
	i := s.TaskIndex(id)
	if i < 0 {
		return Result{}, fmt.Errorf("updating %q: %w", id, ErrTaskNotFound)
	}
	t := s.Tasks[i]
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.ProjectID != nil {
		t.ProjectID = *p.ProjectID
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.DurationMinutes != nil {
		t.DurationMinutes = *p.DurationMinutes
	}
	if p.XP != nil {
		t.XP = *p.XP
	}
	if p.DateISO != nil {
		t.DateISO = *p.DateISO
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	if p.RepeatFrequency != nil {
		t.RepeatFrequency = *p.RepeatFrequency
	}

	if t.Done && t.Status != domain.TaskDone {
		return Result{}, fmt.Errorf("%w: toggle a done task to reopen it", ErrInvalidTask)
	}
	if !t.Done && t.Status == domain.TaskDone {
		return Result{}, fmt.Errorf("%w: toggle the task to complete it", ErrInvalidTask)
	}
	if err := validateTask(s, t); err != nil {
		return Result{}, err
	}

	r := begin(s)
	r.Snapshot.Tasks[i] = t
	return *r, nil
}

// DeleteTask removes the task with id.
func DeleteTask(s domain.Snapshot, id string) (Result, error) {
	i := s.TaskIndex(id)
	if i < 0 {
		return Result{}, fmt.Errorf("deleting %q: %w", id, ErrTaskNotFound)
	}
	r := begin(s)
	r.Snapshot.Tasks = append(r.Snapshot.Tasks[:i], r.Snapshot.Tasks[i+1:]...)
	return *r, nil
}

// ToggleTaskDone completes or reopens a task.
//
// Completing pays the task's XP into pendingXp and totalXp, advances a
// repeating task's streak, counts as the category's check-in for today when
// there is none, and records project work. When the last open task of a
// project is completed the project is marked Completed and a bonus is paid.
//
// Reopening only takes the XP back. Streaks, check-ins and project
// completion stay as they are.
func ToggleTaskDone(s domain.Snapshot, id string, now time.Time) (Result, error) {
	i := s.TaskIndex(id)
	if i < 0 {
		return Result{}, fmt.Errorf("toggling %q: %w", id, ErrTaskNotFound)
	}
	r := begin(s)
	if s.Tasks[i].Done {
		reopenTask(r, i)
		return *r, nil
	}
	completeTask(r, i, domain.Today(now))
	return *r, nil
}

func reopenTask(r *Result, i int) {
	out := &r.Snapshot
	t := &out.Tasks[i]
	out.PendingXP = domain.ClampNonNegative(out.PendingXP - t.XP)
	out.TotalXP = domain.ClampNonNegative(out.TotalXP - t.XP)
	t.Done = false
	t.Status = domain.TaskToday
}

func completeTask(r *Result, i int, today string) {
	out := &r.Snapshot
	t := &out.Tasks[i]

	out.PendingXP += t.XP
	out.TotalXP += t.XP

	if t.Repeating() {
		t.Streak = nextStreak(*t, today)
		t.LastCompletedDateISO = today
	}
	t.Done = true
	t.Status = domain.TaskDone
	t.DateISO = today
	r.effect(domain.EffectXP, t.Category, t.XP)
	r.notice("+%d XP: %s", t.XP, t.Title)

	if _, ok := out.CheckIn(t.Category, today); !ok {
		out.Streaks = append(out.Streaks, domain.StreakCheckIn{
			ID:           newID(),
			Category:     t.Category,
			DateISO:      today,
			MiniTaskDone: true,
			Source:       domain.CheckInXP,
			Note:         "XP Task: " + t.Title,
		})
	}

	if t.ProjectID == "" {
		return
	}
	pi := out.ProjectIndex(t.ProjectID)
	if pi < 0 {
		return
	}
	p := &out.Projects[pi]
	p.AddWorkDate(today)

	linked := out.ProjectTasks(p.ID)
	if p.Status == domain.ProjectCompleted || !domain.AllTasksDone(linked) {
		return
	}
	bonus := domain.CompletionBonus(linked)
	out.PendingXP += bonus
	out.TotalXP += bonus
	p.Status = domain.ProjectCompleted
	r.effect(domain.EffectProjectCompleted, p.Category, bonus)
	r.notice("Project %q completed! +%d XP bonus", p.Title, bonus)
}

// nextStreak is the streak a repeating task reaches when completed today.
func nextStreak(t domain.XpTask, today string) int {
	if t.LastCompletedDateISO == "" {
		return 1
	}
	periods, err := domain.PeriodsBetween(t.RepeatFrequency, t.LastCompletedDateISO, today)
	if err != nil {
		return 1
	}
	switch periods {
	case 0:
		return max(t.Streak, 1)
	case 1:
		return t.Streak + 1
	default:
		return 1
	}
}
