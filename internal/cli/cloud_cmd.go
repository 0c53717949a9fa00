package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/streakhq/internal/auth"
	"github.com/alexanderramin/streakhq/internal/cli/formatter"
	"github.com/alexanderramin/streakhq/internal/persist"
)

func newAuthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign in to sync with the cloud",
	}
	cmd.AddCommand(
		newAuthLoginCmd(app),
		newAuthLogoutCmd(app),
		newAuthWhoamiCmd(app),
	)
	return cmd
}

func requireAuth(app *App) (*auth.Provider, error) {
	if app.Auth == nil {
		return nil, persist.ErrCloudDisabled
	}
	return app.Auth, nil
}

func newAuthLoginCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in and load your cloud data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := requireAuth(app)
			if err != nil {
				return err
			}
			sess, err := p.SignIn(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s %s\n",
				formatter.Bold(sess.Email), formatter.Dim("until "+sess.ExpiresAt.Format("2006-01-02")))
			return nil
		},
	}
}

func newAuthLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out; local data is kept",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := requireAuth(app)
			if err != nil {
				return err
			}
			if err := p.SignOut(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func newAuthWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := requireAuth(app)
			if err != nil {
				return err
			}
			sess, err := p.Current(cmd.Context())
			if err != nil {
				return err
			}
			if sess == nil {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Not signed in"))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.Bold(sess.Email), formatter.TruncID(sess.UserID))
			return nil
		},
	}
}

func newSyncCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Move data between this machine and the cloud",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "pull",
			Short: "Replace local data with the cloud copy (local settings win)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := requireAuth(app); err != nil {
					return err
				}
				found, err := app.Store.PullCloud(cmd.Context())
				if err != nil {
					return err
				}
				if !found {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Nothing to pull: not signed in or no cloud copy yet"))
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Loaded data from the cloud")
				return nil
			},
		},
		&cobra.Command{
			Use:   "push",
			Short: "Save local data to the cloud now",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Store.PushCloud(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Saved to the cloud")
				return nil
			},
		},
	)
	return cmd
}
