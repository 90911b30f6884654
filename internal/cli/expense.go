package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tuuhea417/bear-365-saving/internal/core"
)

func newExpenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Record and inspect expenses",
	}
	cmd.AddCommand(newExpenseAddCmd(), newExpenseRmCmd(), newExpenseListCmd())
	return cmd
}

func newExpenseAddCmd() *cobra.Command {
	var (
		date     string
		title    string
		category string
		method   string
	)

	cmd := &cobra.Command{
		Use:   "add <amount>",
		Short: "Add an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			key, err := core.ParseDateKey(date)
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close(cmd.Context())

			record, ok := a.ledger.AddExpense(core.Expense{
				Date:     key,
				Amount:   amount,
				Title:    title,
				Category: core.Category(category),
				Method:   core.Method(method),
			})
			if !ok {
				return fmt.Errorf("invalid expense: check amount, category and method")
			}

			cur := a.ledger.Snapshot().Settings.Currency
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s  %s  %s (%s/%s)  id=%s\n",
				record.Date, core.FormatAmount(record.Amount, cur), record.Title,
				record.Category, record.Method, record.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", string(core.NewDateKey(time.Now())), "Expense date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&title, "title", "", "Description (defaults to a placeholder)")
	cmd.Flags().StringVar(&category, "category", string(core.CategoryFood), "Category: food|transport|medical|entertainment|other")
	cmd.Flags().StringVar(&method, "method", string(core.MethodCash), "Payment method: cash|card")
	return cmd
}

func newExpenseRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an expense by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close(cmd.Context())

			if !a.ledger.RemoveExpense(args[0]) {
				fmt.Fprintf(cmd.OutOrStdout(), "No expense with id %s\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed expense %s\n", args[0])
			return nil
		},
	}
}

func newExpenseListCmd() *cobra.Command {
	var (
		month string
		day   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses for a month or a single day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close(cmd.Context())

			state := a.ledger.Snapshot()
			cur := state.Settings.Currency

			var records []core.Expense
			switch {
			case day != "":
				key, err := core.ParseDateKey(day)
				if err != nil {
					return err
				}
				records = core.DailyExpenses(state.Expenses, key)
			default:
				p, err := parsePeriod(month)
				if err != nil {
					return err
				}
				records = core.MonthlyExpenses(state.Expenses, p)
			}

			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No expenses recorded")
				return nil
			}
			var total float64
			for _, e := range records {
				total += e.Amount
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-12s  %s (%s/%s)  id=%s\n",
					e.Date, core.FormatAmount(e.Amount, cur), e.Title, e.Category, e.Method, e.ID)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %s\n", core.FormatAmount(total, cur))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month to list (YYYY-MM, default current)")
	cmd.Flags().StringVar(&day, "day", "", "Exact day to list (YYYY-MM-DD)")
	return cmd
}
