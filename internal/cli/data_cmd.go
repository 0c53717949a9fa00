package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/streakhq/internal/cli/formatter"
)

// maxImportSize bounds backup files read by data import.
const maxImportSize = 5 << 20

func newDataCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Export, import or reset all data",
	}
	cmd.AddCommand(
		newDataExportCmd(app),
		newDataImportCmd(app),
		newDataResetCmd(app),
		newDataBackupsCmd(app),
	)
	return cmd
}

func newDataExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a backup file",
		Long:  "Write a JSON backup of all data. The default file name carries today's date; --out - writes to stdout.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, name, err := app.Store.Export()
			if err != nil {
				return err
			}
			if out == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if out == "" {
				out = name
			}
			if err := os.WriteFile(out, data, 0o600); err != nil {
				return fmt.Errorf("writing backup: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", formatter.Bold(out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file")
	return cmd
}

func newDataImportCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all data with a backup file",
		Long:  "Replace all data with a backup file. The current data is archived first; - reads stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening backup: %w", err)
				}
				defer f.Close()
				r = f
			}
			data, err := io.ReadAll(io.LimitReader(r, maxImportSize+1))
			if err != nil {
				return fmt.Errorf("reading backup: %w", err)
			}
			if len(data) > maxImportSize {
				return fmt.Errorf("backup is larger than %d bytes", maxImportSize)
			}

			if err := confirmDestructive(app, yes, "Replace all data with this backup?", "Current data is archived and then overwritten."); err != nil {
				return err
			}
			res, err := app.Store.Import(cmd.Context(), data)
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

func newDataResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all data and start from the default categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := confirmDestructive(app, yes, "Reset all data?", "Streaks, tasks, projects and the ledger are archived and then cleared."); err != nil {
				return err
			}
			res, err := app.Store.Reset(cmd.Context())
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

func newDataBackupsCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "backups",
		Short: "List snapshots archived by import and reset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backups, err := app.Store.Backups(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(backups) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No backups yet."))
				return nil
			}
			rows := make([][]string, 0, len(backups))
			for _, b := range backups {
				owner := b.UserID
				if owner == "" {
					owner = "local"
				}
				rows = append(rows, []string{
					strconv.FormatInt(b.ID, 10),
					b.Reason,
					owner,
					b.CreatedAt.Local().Format("2006-01-02 15:04"),
					fmt.Sprintf("%.1f KB", float64(len(b.Data))/1024),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderTable([]string{"ID", "REASON", "OWNER", "SAVED", "SIZE"}, rows))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "How many backups to show")
	return cmd
}
