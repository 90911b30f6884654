package cli

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/tuuhea417/bear-365-saving/internal/core"
	"github.com/tuuhea417/bear-365-saving/internal/verse"
)

func newSummaryCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show savings progress and monthly spending breakdowns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePeriod(month)
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close(cmd.Context())

			state := a.ledger.Snapshot()
			cur := state.Settings.Currency
			out := cmd.OutOrStdout()

			saved := core.YearToDateSavings(state.Savings, p.Year)
			pct := core.GoalProgressPercent(saved, state.Settings.Goal)
			fmt.Fprintf(out, "%d savings: %s / %s (%.0f%%)\n",
				p.Year, core.FormatAmount(saved, cur),
				core.FormatAmount(state.Settings.Goal, cur), pct)

			fmt.Fprintf(out, "Wishlist total: %s\n",
				core.FormatAmount(core.WishlistTotal(state.Wishlist), cur))

			monthly := core.MonthlyExpenses(state.Expenses, p)
			var total float64
			for _, e := range monthly {
				total += e.Amount
			}
			fmt.Fprintf(out, "\n%s expenses: %s (%d records)\n", p, core.FormatAmount(total, cur), len(monthly))

			if slices := core.CategoryBreakdown(monthly); len(slices) > 0 {
				fmt.Fprintln(out, "\nBy category:")
				for _, s := range slices {
					fmt.Fprintf(out, "  %-14s %s\n", s.Name, core.FormatAmount(s.Amount, cur))
				}
			}
			if slices := core.MethodBreakdown(monthly); len(slices) > 0 {
				fmt.Fprintln(out, "\nBy payment method:")
				for _, s := range slices {
					fmt.Fprintf(out, "  %-14s %s\n", s.Name, core.FormatAmount(s.Amount, cur))
				}
			}

			v := verse.Pick(rand.New(rand.NewSource(rand.Int63())))
			fmt.Fprintf(out, "\n%s (%s)\n", v.Text, v.Ref)
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Period to summarize (YYYY-MM, default current)")
	return cmd
}
