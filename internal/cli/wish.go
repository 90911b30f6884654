package cli

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/tuuhea417/bear-365-saving/internal/core"
)

func newWishCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wish",
		Short: "Manage the wishlist",
	}
	cmd.AddCommand(newWishAddCmd(), newWishRmCmd(), newWishListCmd())
	return cmd
}

func newWishAddCmd() *cobra.Command {
	var (
		price    float64
		platform string
		image    string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a wishlist item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item := core.WishItem{
				Name:     args[0],
				Price:    price,
				Platform: platform,
			}
			if image != "" {
				encoded, err := encodeImage(image)
				if err != nil {
					return err
				}
				item.Image = encoded
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close(cmd.Context())

			stored, ok := a.ledger.AddWishlistItem(item)
			if !ok {
				return fmt.Errorf("invalid item: name and a positive price are required")
			}

			cur := a.ledger.Snapshot().Settings.Currency
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s  %s  id=%s\n",
				stored.Name, core.FormatAmount(stored.Price, cur), stored.ID)
			return nil
		},
	}

	cmd.Flags().Float64Var(&price, "price", 0, "Item price (required)")
	cmd.Flags().StringVar(&platform, "platform", "", "Where to buy it")
	cmd.Flags().StringVar(&image, "image", "", "Path to a thumbnail image")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func newWishRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a wishlist item by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close(cmd.Context())

			if !a.ledger.RemoveWishlistItem(args[0]) {
				fmt.Fprintf(cmd.OutOrStdout(), "No wishlist item with id %s\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed wishlist item %s\n", args[0])
			return nil
		},
	}
}

func newWishListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List wishlist items and their total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close(cmd.Context())

			state := a.ledger.Snapshot()
			cur := state.Settings.Currency
			if len(state.Wishlist) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Wishlist is empty")
				return nil
			}
			for _, item := range state.Wishlist {
				platform := item.Platform
				if platform == "" {
					platform = "General"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s  %-12s  %s  id=%s\n",
					item.Name, core.FormatAmount(item.Price, cur), platform, item.ID)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %s\n",
				core.FormatAmount(core.WishlistTotal(state.Wishlist), cur))
			return nil
		},
	}
}

// encodeImage reads the file and returns it as a data URL, the same
// binary-as-text shape browsers produce for upload previews.
func encodeImage(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	mime := http.DetectContentType(raw)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}
