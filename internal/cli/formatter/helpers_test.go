package formatter

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/streakhq/internal/domain"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes ANSI escape codes so assertions are terminal-independent.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0m"},
		{-5, "0m"},
		{45, "45m"},
		{60, "1h"},
		{90, "1h 30m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMinutes(tt.in))
	}
}

func TestEuro(t *testing.T) {
	assert.Equal(t, "€12.50", Euro(12.5))
	assert.Equal(t, "-€3.00", Euro(-3))
	assert.Equal(t, "€0.00", Euro(0))
}

func TestTruncID(t *testing.T) {
	assert.Equal(t, "abcdef12", stripANSI(TruncID("abcdef12-3456-7890")))
	assert.Equal(t, "short", stripANSI(TruncID("short")))
}

func TestRenderGate(t *testing.T) {
	assert.Equal(t, "[███░░] 3/5", stripANSI(RenderGate(3, 5)))
	assert.Equal(t, "[█████] 7/5", stripANSI(RenderGate(7, 5)))
	assert.Equal(t, "[░░] 0/2", stripANSI(RenderGate(0, 2)))
	assert.Equal(t, "open", stripANSI(RenderGate(1, 0)))
}

func TestThemeColor_FallsBackForUnknownTheme(t *testing.T) {
	for _, theme := range domain.ColorThemes {
		assert.NotEqual(t, ColorFg, ThemeColor(theme), theme)
	}
	assert.Equal(t, ColorFg, ThemeColor("mauve"))
}

func TestRepeatBadge(t *testing.T) {
	assert.Empty(t, RepeatBadge(domain.XpTask{}))
	got := stripANSI(RepeatBadge(domain.XpTask{RepeatFrequency: domain.RepeatDaily, Streak: 4}))
	assert.Equal(t, "↻ daily ×4", got)
}

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	out := stripANSI(RenderTable([]string{"A", "B"}, [][]string{
		{StyleGreen.Render("long cell"), "x"},
		{"s", "y"},
	}))
	assert.Contains(t, out, "long cell  x")
	assert.Contains(t, out, "s          y")
}
