package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tuuhea417/bear-365-saving/internal/core"
)

func newGoalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage the annual savings goal",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set <amount>",
		Short: "Set the annual savings goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			goal, err := parseAmount(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close(cmd.Context())

			if !a.ledger.SetGoal(goal) {
				return fmt.Errorf("invalid goal %q", args[0])
			}
			cur := a.ledger.Snapshot().Settings.Currency
			fmt.Fprintf(cmd.OutOrStdout(), "Annual goal set to %s\n", core.FormatAmount(goal, cur))
			return nil
		},
	})
	return cmd
}

func newCurrencyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "currency",
		Short: "Manage the display currency",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set <code>",
		Short: "Set the display currency (TWD|KRW|JPY|USD|CNY)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close(cmd.Context())

			if !a.ledger.SetCurrency(core.Currency(args[0])) {
				return fmt.Errorf("invalid currency %q", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Currency set to %s\n", args[0])
			return nil
		},
	})
	return cmd
}
