package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/streakhq/internal/cli/formatter"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
	}
	cmd.AddCommand(
		newSettingsShowCmd(app),
		newSettingsSetCmd(app),
	)
	return cmd
}

func newSettingsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := app.Store.Snapshot()
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, formatter.FormatSettings(snap.Settings))
			for _, c := range snap.Categories {
				minis := snap.Settings.DefaultMiniTasksByCategory[c.ID]
				fmt.Fprintf(w, "%s %s\n", formatter.CategoryName(c), formatter.Dim(strings.Join(minis, " · ")))
			}
			return nil
		},
	}
}

func newSettingsSetCmd(app *App) *cobra.Command {
	var (
		rate      float64
		gate      bool
		threshold int
		apiKey    string
		minis     []string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings",
		Long: `Change the settings whose flags are given.

  --mini "Health=10 squats|Stretch" replaces a category's mini-tasks.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := app.Store.Snapshot()
			next := snap.Clone().Settings
			if next.DefaultMiniTasksByCategory == nil {
				next.DefaultMiniTasksByCategory = map[string][]string{}
			}
			changed := cmd.Flags().Changed

			if changed("xp-rate") {
				next.XPToEuroRate = rate
			}
			if changed("gate") {
				next.SpendGateEnabled = gate
			}
			if changed("gate-threshold") {
				next.SpendGateThreshold = threshold
			}
			if changed("api-key") {
				next.GeminiAPIKey = apiKey
			}
			for _, m := range minis {
				name, list, ok := strings.Cut(m, "=")
				if !ok {
					return fmt.Errorf("--mini %q: want <category>=<task>|<task>", m)
				}
				id, err := resolveCategory(snap, name)
				if err != nil {
					return err
				}
				var tasks []string
				for _, t := range strings.Split(list, "|") {
					if t = strings.TrimSpace(t); t != "" {
						tasks = append(tasks, t)
					}
				}
				next.DefaultMiniTasksByCategory[id] = tasks
			}

			res, err := app.Store.UpdateSettings(cmd.Context(), next)
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().Float64Var(&rate, "xp-rate", 1, "Euros per XP")
	cmd.Flags().BoolVar(&gate, "gate", true, "Require check-ins before spending")
	cmd.Flags().IntVar(&threshold, "gate-threshold", 5, "Categories needed to open the spend gate")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key for the AI assistant (empty to clear)")
	cmd.Flags().StringArrayVar(&minis, "mini", nil, "Mini-tasks for a category")
	return cmd
}
