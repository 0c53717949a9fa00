package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/streakhq/internal/cli/formatter"
	"github.com/alexanderramin/streakhq/internal/domain"
	"github.com/alexanderramin/streakhq/internal/ops"
)

func newBankCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bank",
		Short: "Post XP and record rewards",
	}
	cmd.AddCommand(
		newBankPostCmd(app),
		newBankEntryCmd(app, domain.LedgerSpend),
		newBankEntryCmd(app, domain.LedgerEarn),
		newBankBalanceCmd(app),
		newBankLedgerCmd(app),
	)
	return cmd
}

func newBankPostCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "post",
		Short: "Convert pending XP into euros",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Store.PostXPToBank(cmd.Context())
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func newBankEntryCmd(app *App, typ domain.LedgerType) *cobra.Command {
	var flags entryFlags

	use, short := "earn <amount>", "Record a manual reward"
	if typ == domain.LedgerSpend {
		use, short = "spend <amount>", "Spend from the bank (needs the spend gate open)"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.validate(); err != nil {
				return err
			}
			amount, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("amount %q: %w", args[0], ops.ErrInvalidAmount)
			}
			res, err := app.Store.AddLedgerEntry(cmd.Context(), ops.LedgerInput{
				Type:       typ,
				EuroAmount: amount,
				DateISO:    flags.date,
				Notes:      flags.note,
			})
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			fmt.Fprintf(cmd.OutOrStdout(), "Balance: %s\n", formatter.Euro(domain.Balance(res.Snapshot)))
			return nil
		},
	}
	cmd.Flags().AddFlagSet(flags.flagSet("What the money was for"))
	return cmd
}

func newBankBalanceCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show balance, pending XP and the spend gate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBalance(app.Store.Snapshot(), today(app)))
			return nil
		},
	}
}

func newBankLedgerCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "List ledger entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := app.Store.Snapshot()
			if len(snap.Ledger) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("The ledger is empty."))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLedger(snap.Ledger, limit))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Entries to show (0 for all)")
	return cmd
}

func newShieldCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shield",
		Short: "Streak shields",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "buy <category>",
		Short: fmt.Sprintf("Buy a shield for a category (%d XP worth)", domain.ShieldCostXP),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveCategory(app.Store.Snapshot(), args[0])
			if err != nil {
				return err
			}
			res, err := app.Store.BuyShield(cmd.Context(), id)
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	})
	return cmd
}
