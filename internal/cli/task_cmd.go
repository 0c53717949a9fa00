package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/streakhq/internal/cli/formatter"
	"github.com/alexanderramin/streakhq/internal/domain"
	"github.com/alexanderramin/streakhq/internal/ops"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage XP tasks",
	}
	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskEditCmd(app),
		newTaskDoneCmd(app),
		newTaskRemoveCmd(app),
	)
	return cmd
}

// taskFlags holds the editable task fields as raw flag values.
type taskFlags struct {
	category string
	project  string
	status   string
	minutes  int
	xp       int
	date     string
	notes    string
	repeat   string
}

func (f *taskFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "Category")
	cmd.Flags().StringVarP(&f.project, "project", "p", "", "Project ID or prefix")
	cmd.Flags().StringVarP(&f.status, "status", "s", "", `Status: "Backlog", "This Week" or "Today"`)
	cmd.Flags().IntVarP(&f.minutes, "minutes", "m", 30, "Estimated duration in minutes")
	cmd.Flags().IntVar(&f.xp, "xp", 10, "XP reward")
	cmd.Flags().StringVar(&f.date, "date", "", "Date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.notes, "notes", "", "Notes")
	cmd.Flags().StringVar(&f.repeat, "repeat", "", "Repeat: daily, weekly or monthly")
}

func parseTaskStatus(s string) (domain.TaskStatus, error) {
	st := domain.TaskStatus(s)
	if !domain.ValidTaskStatuses[st] {
		return "", fmt.Errorf("status %q: %w", s, ops.ErrInvalidTask)
	}
	return st, nil
}

func parseRepeat(s string) (domain.RepeatFrequency, error) {
	r := domain.RepeatFrequency(s)
	if !domain.ValidRepeatFrequencies[r] {
		return "", fmt.Errorf("repeat %q: %w", s, ops.ErrInvalidTask)
	}
	return r, nil
}

func newTaskAddCmd(app *App) *cobra.Command {
	var f taskFlags

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := app.Store.Snapshot()
			in := ops.TaskInput{
				Title:           args[0],
				DurationMinutes: f.minutes,
				XP:              f.xp,
				DateISO:         f.date,
				Notes:           f.notes,
			}
			var err error
			if in.Category, err = resolveCategory(snap, f.category); err != nil {
				return err
			}
			if f.project != "" {
				if in.ProjectID, err = resolveProjectID(snap, f.project); err != nil {
					return err
				}
			}
			if f.status != "" {
				if in.Status, err = parseTaskStatus(f.status); err != nil {
					return err
				}
			}
			if in.RepeatFrequency, err = parseRepeat(f.repeat); err != nil {
				return err
			}

			res, err := app.Store.AddTask(cmd.Context(), in)
			if err != nil {
				return err
			}
			added := res.Snapshot.Tasks[len(res.Snapshot.Tasks)-1]
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s\n", formatter.Bold(added.Title), formatter.TruncID(added.ID))
			return nil
		},
	}
	f.register(cmd)
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var category, status string
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long:  "List open tasks. --all includes completed ones.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := app.Store.Snapshot()
			var err error
			if category != "" {
				if category, err = resolveCategory(snap, category); err != nil {
					return err
				}
			}
			var want domain.TaskStatus
			if status != "" {
				if want, err = parseTaskStatus(status); err != nil {
					return err
				}
			}

			var tasks []domain.XpTask
			for _, t := range snap.Tasks {
				if category != "" && t.Category != category {
					continue
				}
				if want != "" && t.Status != want {
					continue
				}
				if t.Done && !all && want != domain.TaskDone {
					continue
				}
				tasks = append(tasks, t)
			}
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No tasks."))
				return nil
			}
			slices.SortStableFunc(tasks, func(a, b domain.XpTask) int {
				return statusRank(a.Status) - statusRank(b.Status)
			})
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(snap, tasks))
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "Only this category")
	cmd.Flags().StringVarP(&status, "status", "s", "", "Only this status")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include completed tasks")
	return cmd
}

func statusRank(s domain.TaskStatus) int {
	switch s {
	case domain.TaskToday:
		return 0
	case domain.TaskThisWeek:
		return 1
	case domain.TaskBacklog:
		return 2
	default:
		return 3
	}
}

func newTaskEditCmd(app *App) *cobra.Command {
	var f taskFlags
	var title string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a task's fields",
		Long:  "Change only the fields whose flags are given. Use `task done` to complete a task.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := app.Store.Snapshot()
			id, err := resolveTaskID(snap, args[0])
			if err != nil {
				return err
			}

			var patch ops.TaskPatch
			changed := cmd.Flags().Changed
			if changed("title") {
				patch.Title = &title
			}
			if changed("category") {
				c, err := resolveCategory(snap, f.category)
				if err != nil {
					return err
				}
				patch.Category = &c
			}
			if changed("project") {
				p := ""
				if f.project != "" {
					if p, err = resolveProjectID(snap, f.project); err != nil {
						return err
					}
				}
				patch.ProjectID = &p
			}
			if changed("status") {
				st, err := parseTaskStatus(f.status)
				if err != nil {
					return err
				}
				patch.Status = &st
			}
			if changed("minutes") {
				patch.DurationMinutes = &f.minutes
			}
			if changed("xp") {
				patch.XP = &f.xp
			}
			if changed("date") {
				patch.DateISO = &f.date
			}
			if changed("notes") {
				patch.Notes = &f.notes
			}
			if changed("repeat") {
				r, err := parseRepeat(f.repeat)
				if err != nil {
					return err
				}
				patch.RepeatFrequency = &r
			}

			res, err := app.Store.UpdateTask(cmd.Context(), id, patch)
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	return cmd
}

func newTaskDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Complete a task, or reopen a completed one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveTaskID(app.Store.Snapshot(), args[0])
			if err != nil {
				return err
			}
			res, err := app.Store.ToggleTaskDone(cmd.Context(), id)
			if err != nil {
				return err
			}
			t := res.Snapshot.Tasks[res.Snapshot.TaskIndex(id)]
			state := "reopened"
			if t.Done {
				state = "done"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.Bold(t.Title), state)
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveTaskID(app.Store.Snapshot(), args[0])
			if err != nil {
				return err
			}
			res, err := app.Store.DeleteTask(cmd.Context(), id)
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
}
