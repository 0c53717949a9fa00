package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/streakhq/internal/cli/formatter"
	"github.com/alexanderramin/streakhq/internal/domain"
)

var errAborted = errors.New("aborted")

// huhTheme is the form palette, matching the formatter colors.
func huhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// confirmForm creates a huh form for a yes/no confirmation.
func confirmForm(title, description string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(huhTheme()).WithShowHelp(false)
}

// confirmDestructive asks before data is thrown away. --yes skips the
// question; without a terminal the flag is required.
func confirmDestructive(app *App, yes bool, title, description string) error {
	if yes {
		return nil
	}
	if !app.IsInteractive() {
		return fmt.Errorf("%s: re-run with --yes to confirm", title)
	}
	var ok bool
	if err := confirmForm(title, description, &ok).Run(); err != nil {
		return err
	}
	if !ok {
		return errAborted
	}
	return nil
}

func addYesFlag(cmd *cobra.Command, yes *bool) {
	cmd.Flags().BoolVarP(yes, "yes", "y", false, "Skip the confirmation prompt")
}

// entryFlags are shared by commands that write dated entries.
type entryFlags struct {
	date string
	note string
}

func (f *entryFlags) flagSet(noteUsage string) *pflag.FlagSet {
	fs := pflag.NewFlagSet("entry", pflag.ContinueOnError)
	fs.StringVar(&f.date, "date", "", "Date (YYYY-MM-DD, default today)")
	fs.StringVar(&f.note, "note", "", noteUsage)
	return fs
}

func (f *entryFlags) validate() error {
	return validateOptionalDate(f.date)
}

func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := domain.ParseDate(s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format: %w", err)
	}
	return nil
}
