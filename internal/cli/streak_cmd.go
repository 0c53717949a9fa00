package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/streakhq/internal/cli/formatter"
)

func newStreakCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "streak",
		Short: "Check in mini-tasks and inspect streaks",
	}
	cmd.AddCommand(
		newStreakToggleCmd(app),
		newStreakHistoryCmd(app),
	)
	return cmd
}

func newStreakToggleCmd(app *App) *cobra.Command {
	var flags entryFlags

	cmd := &cobra.Command{
		Use:   "toggle <category>",
		Short: "Mark or unmark a category's mini-task",
		Long: `Mark a category's mini-task done for today (or --date). Running it
again on a done day clears it. A shield day becomes a worked day.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.validate(); err != nil {
				return err
			}
			category, err := resolveCategory(app.Store.Snapshot(), args[0])
			if err != nil {
				return err
			}
			res, err := app.Store.ToggleMiniTask(cmd.Context(), category, flags.date, flags.note)
			if err != nil {
				return err
			}

			date := flags.date
			if date == "" {
				date = today(app)
			}
			state := "cleared"
			if c, ok := res.Snapshot.CheckIn(category, date); ok && c.MiniTaskDone {
				state = "done"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s on %s\n", category, state, date)
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().AddFlagSet(flags.flagSet("Note stored with the check-in"))
	return cmd
}

func newStreakHistoryCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "history <category>",
		Short: "Show a category's recent days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if days <= 0 {
				return fmt.Errorf("--days must be positive")
			}
			snap := app.Store.Snapshot()
			id, err := resolveCategory(snap, args[0])
			if err != nil {
				return err
			}
			c, _ := snap.Category(id)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatHistory(snap, c, today(app), days))
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 14, "Number of days to show")
	return cmd
}
