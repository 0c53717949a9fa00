package cli

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/streakhq/internal/cli/formatter"
	"github.com/alexanderramin/streakhq/internal/domain"
	"github.com/alexanderramin/streakhq/internal/ops"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}
	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectStatusCmd(app),
		newProjectRemoveCmd(app),
		newProjectSuggestCmd(app),
	)
	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var category, description string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := resolveCategory(app.Store.Snapshot(), category)
			if err != nil {
				return err
			}
			res, err := app.Store.AddProject(cmd.Context(), ops.ProjectInput{
				Title:       args[0],
				Description: description,
				Category:    cat,
			})
			if err != nil {
				return err
			}
			p := res.Snapshot.Projects[len(res.Snapshot.Projects)-1]
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s %s\n", formatter.Bold(p.Title), formatter.TruncID(p.ID))
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Description")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := app.Store.Snapshot()
			if len(snap.Projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No projects."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(snap))
			return nil
		},
	}
}

func newProjectStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <Active|Completed|On Hold>",
		Short: "Set a project's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveProjectID(app.Store.Snapshot(), args[0])
			if err != nil {
				return err
			}
			res, err := app.Store.SetProjectStatus(cmd.Context(), id, domain.ProjectStatus(args[1]))
			if err != nil {
				return err
			}
			p := res.Snapshot.Projects[res.Snapshot.ProjectIndex(id)]
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", formatter.Bold(p.Title), formatter.ProjectStatusPill(p.Status))
			return nil
		},
	}
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Delete a project",
		Long:    "Delete a project. Its tasks are kept and unlinked.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := app.Store.Snapshot()
			id, err := resolveProjectID(snap, args[0])
			if err != nil {
				return err
			}
			title := snap.Projects[snap.ProjectIndex(id)].Title
			if err := confirmDestructive(app, yes, fmt.Sprintf("Delete project %q?", title), "Its tasks stay, without the project link."); err != nil {
				return err
			}
			res, err := app.Store.DeleteProject(cmd.Context(), id)
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

func newProjectSuggestCmd(app *App) *cobra.Command {
	var feedback, imagePath string

	cmd := &cobra.Command{
		Use:   "suggest <id>",
		Short: "Ask the AI assistant for project tasks",
		Long: `Ask the AI assistant for next tasks and add them to the project's
backlog. --feedback steers the suggestions; --image attaches a picture
(whiteboard, notes) for context.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveProjectID(app.Store.Snapshot(), args[0])
			if err != nil {
				return err
			}
			var image string
			if imagePath != "" {
				raw, err := os.ReadFile(imagePath)
				if err != nil {
					return fmt.Errorf("reading image: %w", err)
				}
				image = base64.StdEncoding.EncodeToString(raw)
			}

			var spinner *formatter.Spinner
			if app.IsInteractive() {
				spinner = formatter.NewSpinner(cmd.ErrOrStderr(), "Thinking about next tasks...")
				spinner.Start()
			}
			res, err := app.Store.GenerateProjectTasks(cmd.Context(), id, feedback, image)
			if spinner != nil {
				spinner.Stop()
			}
			if err != nil {
				return err
			}

			linked := res.Snapshot.ProjectTasks(id)
			printResult(cmd.OutOrStdout(), res)
			if len(linked) > 0 {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(res.Snapshot, linked))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&feedback, "feedback", "f", "", "Guidance for the suggestions")
	cmd.Flags().StringVar(&imagePath, "image", "", "Image file to include")
	return cmd
}
