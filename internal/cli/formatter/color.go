package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/streakhq/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// themeColors maps category color themes to terminal colors.
var themeColors = map[string]lipgloss.Color{
	"blue":    "#83a598",
	"purple":  "#d3869b",
	"indigo":  "#7c6f9f",
	"teal":    "#689d6a",
	"emerald": "#8ec07c",
	"slate":   "#a89984",
	"rose":    "#fb4934",
	"orange":  "#fe8019",
	"pink":    "#f5a6c8",
	"cyan":    "#76c7c0",
	"amber":   "#fabd2f",
	"lime":    "#b8bb26",
}

// ThemeColor returns the color for a category theme, falling back to the
// foreground color for unknown tags.
func ThemeColor(theme string) lipgloss.Color {
	if c, ok := themeColors[theme]; ok {
		return c
	}
	return ColorFg
}

// CategoryName renders a category name in its theme color.
func CategoryName(c domain.CategoryDef) string {
	return lipgloss.NewStyle().Foreground(ThemeColor(c.ColorTheme)).Bold(true).Render(c.Name)
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
