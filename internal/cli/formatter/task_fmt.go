package formatter

import (
	"github.com/alexanderramin/streakhq/internal/domain"
)

// FormatTaskList renders tasks as a table. Project titles are resolved
// against s.
func FormatTaskList(s domain.Snapshot, tasks []domain.XpTask) string {
	headers := []string{"ID", "TASK", "CATEGORY", "STATUS", "TIME", "XP"}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		title := Bold(t.Title)
		if t.Done {
			title = StyleDim.Strikethrough(true).Render(t.Title)
		}
		if badge := RepeatBadge(t); badge != "" {
			title += " " + badge
		}
		if i := s.ProjectIndex(t.ProjectID); i >= 0 {
			title += " " + Dim("· "+s.Projects[i].Title)
		}
		rows = append(rows, []string{
			TruncID(t.ID),
			title,
			categoryCell(s, t.Category),
			TaskStatusPill(t.Status),
			FormatMinutes(t.DurationMinutes),
			XP(t.XP),
		})
	}
	return RenderTable(headers, rows)
}

// FormatProjectList renders projects with their task progress.
func FormatProjectList(s domain.Snapshot) string {
	headers := []string{"ID", "PROJECT", "CATEGORY", "STATUS", "TASKS", "DAYS WORKED"}
	rows := make([][]string, 0, len(s.Projects))
	for _, p := range s.Projects {
		linked := s.ProjectTasks(p.ID)
		done := 0
		for _, t := range linked {
			if t.Done {
				done++
			}
		}
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Title),
			categoryCell(s, p.Category),
			ProjectStatusPill(p.Status),
			Dim(fmtRatio(done, len(linked))),
			Dim(fmtInt(len(p.WorkDates))),
		})
	}
	return RenderBox("Projects", RenderTable(headers, rows))
}

func categoryCell(s domain.Snapshot, id string) string {
	if c, ok := s.Category(id); ok {
		return CategoryName(c)
	}
	return Dim(id)
}
