package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/streakhq/internal/api"
	"github.com/alexanderramin/streakhq/internal/cli/formatter"
	"github.com/alexanderramin/streakhq/internal/watcher"
)

func (app *App) newWatcher() (*watcher.Watcher, error) {
	schedule := ""
	if app.Config != nil {
		schedule = app.Config.Watch.Schedule
	}
	return watcher.New(app.Store, schedule, watcher.WithLogger(app.Logger))
}

func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Keep reconciling on a schedule until interrupted",
		Long: `Reconcile now, at every watch.schedule tick and just after midnight, so
shields are spent and repeating tasks reopen without opening the app.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := app.newWatcher()
			if err != nil {
				return err
			}
			ctx, stop := signalContext(cmd)
			defer stop()

			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Watching. Ctrl+C to stop."))
			if err := w.Run(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stopped after %d reconciliations\n", w.Runs())
			return nil
		},
	}
}

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API and keep reconciling",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" && app.Config != nil {
				addr = app.Config.API.Addr
			}
			if addr == "" {
				addr = api.DefaultAddr
			}
			w, err := app.newWatcher()
			if err != nil {
				return err
			}
			ctx, stop := signalContext(cmd)
			defer stop()

			watchDone := make(chan struct{})
			go func() {
				defer close(watchDone)
				_ = w.Run(ctx)
			}()

			srv := api.NewServer(app.Store, api.WithLogger(app.Logger))
			fmt.Fprintf(cmd.OutOrStdout(), "Serving on http://%s\n", addr)
			err = srv.Run(ctx, addr)
			stop()
			<-watchDone
			return err
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:         "show",
		Short:       "Print the effective configuration as YAML",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipOpen: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Config == nil {
				return fmt.Errorf("no configuration loaded")
			}
			return app.Config.Show(cmd.OutOrStdout())
		},
	})
	return cmd
}
