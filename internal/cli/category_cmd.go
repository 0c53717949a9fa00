package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/streakhq/internal/cli/formatter"
)

func newCategoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat"},
		Short:   "Manage life categories",
	}
	cmd.AddCommand(
		newCategoryAddCmd(app),
		newCategoryRenameCmd(app),
		newCategoryRemoveCmd(app),
		newCategoryIdeasCmd(app),
	)
	return cmd
}

func newCategoryAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Store.AddCategory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func newCategoryRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <category> <new name>",
		Short: "Rename a category",
		Long:  "Rename a category. Its streaks, tasks, projects and shields move with it.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveCategory(app.Store.Snapshot(), args[0])
			if err != nil {
				return err
			}
			res, err := app.Store.RenameCategory(cmd.Context(), id, args[1])
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func newCategoryRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <category>",
		Aliases: []string{"remove"},
		Short:   "Delete a category and everything in it",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveCategory(app.Store.Snapshot(), args[0])
			if err != nil {
				return err
			}
			desc := "Its streak history, tasks, projects and shields are deleted too."
			if err := confirmDestructive(app, yes, fmt.Sprintf("Delete category %q?", id), desc); err != nil {
				return err
			}
			res, err := app.Store.DeleteCategory(cmd.Context(), id)
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
	addYesFlag(cmd, &yes)
	return cmd
}

func newCategoryIdeasCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ideas <category>",
		Short: "Show mini-task ideas for a category",
		Long:  "Show the category's default mini-tasks and, when the AI assistant is enabled, fresh suggestions.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := app.Store.Snapshot()
			id, err := resolveCategory(snap, args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, m := range snap.Settings.DefaultMiniTasksByCategory[id] {
				fmt.Fprintf(w, "  • %s\n", m)
			}
			suggested, err := app.Store.SuggestMiniTasks(cmd.Context(), id)
			if err != nil {
				return err
			}
			if len(suggested) > 0 {
				fmt.Fprintln(w, formatter.Dim("Suggested: ")+strings.Join(suggested, formatter.Dim(" · ")))
			}
			return nil
		},
	}
}
