package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/streakhq/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title == "" {
		return boxStyle.Render(content)
	}
	return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
}

// TaskStatusPill returns a colored indicator for a task status.
func TaskStatusPill(status domain.TaskStatus) string {
	switch status {
	case domain.TaskToday:
		return StyleYellow.Render("● Today")
	case domain.TaskThisWeek:
		return StyleBlue.Render("◐ This Week")
	case domain.TaskBacklog:
		return StyleDim.Render("○ Backlog")
	case domain.TaskDone:
		return StyleGreen.Render("✔ Done")
	default:
		return StyleDim.Render(string(status))
	}
}

// ProjectStatusPill returns a colored indicator for a project status.
func ProjectStatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectActive:
		return StyleGreen.Render("● Active")
	case domain.ProjectOnHold:
		return StyleYellow.Render("○ On Hold")
	case domain.ProjectCompleted:
		return StyleDim.Render("✔ Completed")
	default:
		return StyleDim.Render(string(status))
	}
}

// RepeatBadge labels a repeating task with its cycle and current streak.
func RepeatBadge(t domain.XpTask) string {
	if !t.Repeating() {
		return ""
	}
	label := "↻ " + string(t.RepeatFrequency)
	if t.Streak > 0 {
		label += fmt.Sprintf(" ×%d", t.Streak)
	}
	return StylePurple.Render(label)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatMinutes converts raw minutes into human-friendly format.
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h := min / 60
	m := min % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}

// Euro formats an amount with two decimals, keeping the sign.
func Euro(v float64) string {
	if v < 0 {
		return fmt.Sprintf("-€%.2f", -v)
	}
	return fmt.Sprintf("€%.2f", v)
}

// XP renders an XP amount in yellow.
func XP(n int) string {
	return StyleYellow.Render(fmt.Sprintf("%d XP", n))
}
