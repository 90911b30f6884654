package cli

import (
	"github.com/spf13/cobra"
)

// Root builds the bear365 command tree.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bear365",
		Short: "Daily savings, expenses and wishlist with live sync",
		Long: `bear365 tracks a daily savings goal, an expense ledger and a
wishlist. State is persisted per identity in a document store
(in-memory, SQLite or Cloud Firestore) and synchronized live, so the
same identity sees the same data from every session.

Backend and sync behavior are configured through the environment
(optionally via .env): DATA_BACKEND, SQLITE_DB_PATH,
FIRESTORE_PROJECT_ID, SYNC_DEBOUNCE, IDENTITY_FILE.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(
		newSavingCmd(),
		newExpenseCmd(),
		newWishCmd(),
		newGoalCmd(),
		newCurrencyCmd(),
		newSummaryCmd(),
		newExportCmd(),
		newImportCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
	)
	return cmd
}
