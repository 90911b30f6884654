package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/tuuhea417/bear-365-saving/internal/export"
)

func newExportCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export savings and expenses to CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close(cmd.Context())

			if file == "" {
				file = export.FileName(time.Now())
			}
			f, err := os.Create(file)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			defer f.Close()

			state := a.ledger.Snapshot()
			if err := export.Write(f, state.Savings, state.Expenses); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d savings entries and %d expenses to %s\n",
				len(state.Savings), len(state.Expenses), file)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Output file (default Bear365_Data_<today>.csv)")
	return cmd
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a previously exported CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open import file: %w", err)
			}
			defer f.Close()

			savings, expenses, err := export.Read(f)
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close(cmd.Context())

			// Replayed through the regular mutation operations so the
			// usual validation and sync paths apply; the debounce
			// coalesces the whole import into one outbound write.
			imported := 0
			for key, amount := range savings {
				if a.ledger.SetSavingsEntry(key, strconv.FormatFloat(amount, 'f', -1, 64)) {
					imported++
				}
			}
			for _, e := range expenses {
				if _, ok := a.ledger.AddExpense(e); ok {
					imported++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d rows from %s\n", imported, args[0])
			return nil
		},
	}
}
