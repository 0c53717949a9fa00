package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/streakhq/internal/auth"
	"github.com/alexanderramin/streakhq/internal/cli/formatter"
	"github.com/alexanderramin/streakhq/internal/config"
	"github.com/alexanderramin/streakhq/internal/domain"
	"github.com/alexanderramin/streakhq/internal/ops"
	"github.com/alexanderramin/streakhq/internal/service"
)

// skipOpen marks commands that run without loading the snapshot.
const skipOpen = "streakhq/skip-open"

// App holds what the CLI commands need. Auth is nil when cloud sync is
// disabled.
type App struct {
	Store         *service.Store
	Auth          *auth.Provider
	Config        *config.Config
	Logger        *slog.Logger
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "streakhq" command and registers all
// subcommands against the provided App. Every command except those marked
// skipOpen opens the Store first, which reconciles the snapshot against
// today.
func NewRootCmd(app *App) *cobra.Command {
	if app.Logger == nil {
		app.Logger = slog.New(slog.DiscardHandler)
	}
	if app.IsInteractive == nil {
		app.IsInteractive = func() bool { return false }
	}

	root := &cobra.Command{
		Use:           "streakhq",
		Short:         "Daily streaks, XP tasks and a reward bank",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipOpen] == "true" {
				return nil
			}
			if _, err := app.Store.Open(cmd.Context()); err != nil {
				return err
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipOpen] == "true" {
				return nil
			}
			return app.Store.Flush(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToday(cmd, app)
		},
	}

	root.AddCommand(
		newTodayCmd(app),
		newStreakCmd(app),
		newTaskCmd(app),
		newProjectCmd(app),
		newCategoryCmd(app),
		newBankCmd(app),
		newShieldCmd(app),
		newSettingsCmd(app),
		newDataCmd(app),
		newAuthCmd(app),
		newSyncCmd(app),
		newWatchCmd(app),
		newServeCmd(app),
		newTUICmd(app),
		newConfigCmd(app),
	)

	return root
}

func newTodayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's streaks, bank and tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToday(cmd, app)
		},
	}
}

func runToday(cmd *cobra.Command, app *App) error {
	snap := app.Store.Snapshot()
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatToday(snap, today(app)))
	return nil
}

func today(app *App) string {
	return domain.Today(app.Store.Now())
}

// printResult writes an operation's celebrations and notices.
func printResult(w io.Writer, res ops.Result) {
	if out := formatter.FormatResult(res); out != "" {
		fmt.Fprintln(w, out)
	}
}
