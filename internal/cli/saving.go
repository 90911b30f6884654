package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/tuuhea417/bear-365-saving/internal/core"
)

func newSavingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saving",
		Short: "Record daily savings contributions",
	}
	cmd.AddCommand(newSavingSetCmd(), newSavingRmCmd(), newSavingListCmd())
	return cmd
}

func newSavingSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <date> <amount>",
		Short: "Set the contribution for a day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := core.ParseDateKey(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close(cmd.Context())

			if !a.ledger.SetSavingsEntry(key, args[1]) {
				return fmt.Errorf("invalid amount %q", args[1])
			}

			state := a.ledger.Snapshot()
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s on %s\n",
				core.FormatAmount(state.Savings[key], state.Settings.Currency), key)
			return nil
		},
	}
}

func newSavingRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <date>",
		Short: "Remove the contribution for a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := core.ParseDateKey(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close(cmd.Context())

			if !a.ledger.SetSavingsEntry(key, "") {
				fmt.Fprintf(cmd.OutOrStdout(), "No entry on %s\n", key)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed entry on %s\n", key)
			return nil
		},
	}
}

func newSavingListCmd() *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contributions and annual progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close(cmd.Context())

			state := a.ledger.Snapshot()
			cur := state.Settings.Currency

			keys := make([]core.DateKey, 0, len(state.Savings))
			for k := range state.Savings {
				keys = append(keys, k)
			}
			sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", k, core.FormatAmount(state.Savings[k], cur))
			}

			total := core.YearToDateSavings(state.Savings, year)
			pct := core.GoalProgressPercent(total, state.Settings.Goal)
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d total: %s / %s (%.0f%%)\n",
				year, core.FormatAmount(total, cur),
				core.FormatAmount(state.Settings.Goal, cur), pct)
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "Year to total")
	return cmd
}
