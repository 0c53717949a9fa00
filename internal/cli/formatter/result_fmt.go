package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/streakhq/internal/domain"
	"github.com/alexanderramin/streakhq/internal/ops"
)

// FormatResult renders the celebration line for each effect followed by
// the notices of an operation. It returns "" when there is nothing to say.
func FormatResult(res ops.Result) string {
	var lines []string
	for _, e := range res.Effects {
		if line := effectLine(e); line != "" {
			lines = append(lines, line)
		}
	}
	for _, n := range res.Notices {
		lines = append(lines, StyleFg.Render("  "+n))
	}
	return strings.Join(lines, "\n")
}

func effectLine(e domain.Effect) string {
	switch e.Kind {
	case domain.EffectStreak:
		return StyleGreen.Render("🔥 Streak kept: " + e.Category)
	case domain.EffectXP:
		return StyleYellow.Render(fmt.Sprintf("⚡ +%d XP", e.Amount))
	case domain.EffectShield:
		return StyleBlue.Render("◆ Shield added to " + e.Category)
	case domain.EffectProjectCompleted:
		return StylePurple.Render(fmt.Sprintf("🏆 Project completed! +%d XP bonus", e.Amount))
	default:
		return ""
	}
}

// FormatSettings renders settings as aligned key/value lines. The API key is
// masked.
func FormatSettings(st domain.Settings) string {
	key := Dim("(not set)")
	if st.GeminiAPIKey != "" {
		key = "••••" + st.GeminiAPIKey[max(len(st.GeminiAPIKey)-4, 0):]
	}
	gate := "off"
	if st.SpendGateEnabled {
		gate = "on"
	}
	rows := [][]string{
		{"xp-rate", strconv.FormatFloat(st.XPToEuroRate, 'f', -1, 64)},
		{"gate", gate},
		{"gate-threshold", fmtInt(st.SpendGateThreshold)},
		{"api-key", key},
	}
	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "%s %s\n", Dim(fmt.Sprintf("%-15s", r[0])), r[1])
	}
	return RenderBox("Settings", strings.TrimRight(b.String(), "\n"))
}

func fmtInt(n int) string {
	return strconv.Itoa(n)
}

func fmtRatio(a, b int) string {
	return fmt.Sprintf("%d/%d", a, b)
}
