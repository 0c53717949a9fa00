package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/streakhq/internal/domain"
)

// FormatLedger renders up to limit entries, newest first. limit <= 0 shows
// everything.
func FormatLedger(entries []domain.RewardLedgerEntry, limit int) string {
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	headers := []string{"DATE", "TYPE", "AMOUNT", "SOURCE", "NOTES"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		amount := StyleGreen.Render("+" + Euro(e.EuroAmount))
		kind := StyleGreen.Render(string(e.Type))
		if e.Type == domain.LedgerSpend {
			amount = StyleRed.Render("-" + Euro(e.EuroAmount))
			kind = StyleRed.Render(string(e.Type))
		}
		rows = append(rows, []string{Dim(e.DateISO), kind, amount, Dim(string(e.Source)), e.Notes})
	}
	return RenderTable(headers, rows)
}

// FormatBalance summarizes the bank: balance, pending XP and the spend gate.
func FormatBalance(s domain.Snapshot, today string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s   %s\n", Dim("Balance"), Bold(Euro(domain.Balance(s))))
	fmt.Fprintf(&b, "%s   %s", Dim("Pending"), XP(s.PendingXP))
	if s.PendingXP > 0 {
		fmt.Fprintf(&b, " %s", Dim(fmt.Sprintf("(≈ %s)", Euro(float64(s.PendingXP)*s.Settings.XPToEuroRate))))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s  %s\n", Dim("Total XP"), XP(s.TotalXP))

	posted := Dim("not yet")
	if domain.PostedToday(s, today) {
		posted = StyleGreen.Render("yes")
	}
	fmt.Fprintf(&b, "%s    %s\n", Dim("Posted"), posted)

	spend := StyleRed.Render("locked")
	if domain.SpendAllowed(s, today) {
		spend = StyleGreen.Render("allowed")
	}
	fmt.Fprintf(&b, "%s     %s %s", Dim("Spend"), spend, gateLabel(s, domain.CategoriesDoneToday(s, today)))
	return RenderBox("Bank", b.String())
}
