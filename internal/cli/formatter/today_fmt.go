package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/streakhq/internal/domain"
)

// FormatToday renders the daily dashboard: one row per category with its
// streak and mini-task state, then the bank summary and today's tasks.
func FormatToday(s domain.Snapshot, today string) string {
	var b strings.Builder

	headers := []string{"", "CATEGORY", "STREAK", "LAST 7", "SHIELDS"}
	rows := make([][]string, 0, len(s.Categories))
	for _, c := range s.Categories {
		rows = append(rows, []string{
			checkMark(s, c.ID, today),
			CategoryName(c),
			streakLabel(domain.StreakCount(s, c.ID, today)),
			HistoryStrip(domain.History(s, c.ID, today, 7)),
			ShieldLabel(domain.ShieldCount(s, c.ID)),
		})
	}
	b.WriteString(RenderTable(headers, rows))
	b.WriteString("\n")

	done := domain.CategoriesDoneToday(s, today)
	fmt.Fprintf(&b, "%s  %s", Dim("Spend gate"), gateLabel(s, done))
	fmt.Fprintf(&b, "    %s %s", Dim("Pending"), XP(s.PendingXP))
	fmt.Fprintf(&b, "    %s %s\n", Dim("Balance"), StyleGreen.Render(Euro(domain.Balance(s))))
	if earned := domain.XPEarnedToday(s, today); earned > 0 {
		fmt.Fprintf(&b, "%s %s\n", Dim("Earned today"), XP(earned))
	}

	var due []domain.XpTask
	for _, t := range s.Tasks {
		if t.Status == domain.TaskToday || (t.Done && t.DateISO == today) {
			due = append(due, t)
		}
	}
	if len(due) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatTaskList(s, due))
	}

	return RenderBox("Today · "+today, strings.TrimRight(b.String(), "\n"))
}

func checkMark(s domain.Snapshot, category, today string) string {
	c, ok := s.CheckIn(category, today)
	switch {
	case ok && c.MiniTaskDone:
		return StyleGreen.Render("✔")
	case ok && c.IsShield:
		return StyleBlue.Render("◆")
	default:
		return StyleDim.Render("·")
	}
}

func streakLabel(n int) string {
	switch {
	case n == 0:
		return Dim("0")
	case n >= 7:
		return StyleYellow.Render(fmt.Sprintf("🔥 %d", n))
	default:
		return StyleFg.Render(fmt.Sprintf("%d", n))
	}
}

// ShieldLabel renders a shield counter, red when none are left.
func ShieldLabel(n int) string {
	if n == 0 {
		return StyleRed.Render("◇ 0")
	}
	return StyleBlue.Render(fmt.Sprintf("◆ %d", n))
}

func gateLabel(s domain.Snapshot, done int) string {
	if !s.Settings.SpendGateEnabled {
		return Dim("off")
	}
	return RenderGate(done, s.Settings.SpendGateThreshold)
}
