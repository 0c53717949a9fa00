package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/streakhq/internal/domain"
)

// HistoryStrip renders days oldest first: ■ worked, ◆ shielded, □ missed.
func HistoryStrip(days []domain.HistoryDay) string {
	var b strings.Builder
	for _, d := range days {
		switch {
		case d.Shield:
			b.WriteString(StyleBlue.Render("◆"))
		case d.Done:
			b.WriteString(StyleGreen.Render("■"))
		default:
			b.WriteString(StyleDim.Render("□"))
		}
	}
	return b.String()
}

// FormatHistory renders a category's recent days, one line each, newest
// first.
func FormatHistory(s domain.Snapshot, c domain.CategoryDef, today string, n int) string {
	days := domain.History(s, c.ID, today, n)

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s %d    %s\n\n",
		HistoryStrip(days), Dim("streak"), domain.StreakCount(s, c.ID, today),
		ShieldLabel(domain.ShieldCount(s, c.ID)))
	for i := len(days) - 1; i >= 0; i-- {
		d := days[i]
		mark := StyleDim.Render("□ missed")
		note := ""
		if ci, ok := s.CheckIn(c.ID, d.DateISO); ok {
			note = ci.Note
		}
		switch {
		case d.Shield:
			mark = StyleBlue.Render("◆ shield")
		case d.Done:
			mark = StyleGreen.Render("■ done")
		}
		fmt.Fprintf(&b, "%s  %s", Dim(d.DateISO), mark)
		if note != "" {
			fmt.Fprintf(&b, "  %s", Dim(note))
		}
		b.WriteString("\n")
	}
	return RenderBox(c.Name, strings.TrimRight(b.String(), "\n"))
}
