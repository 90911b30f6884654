package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var (
		name  string
		email string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with a named account",
		Long: `Sign in with a named account. An active anonymous identity is
replaced, not merged: the new identity starts from its own documents.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close(cmd.Context())

			ident, err := a.provider.SignIn(cmd.Context(), name, email)
			if err != nil {
				return fmt.Errorf("sign in: %w", err)
			}
			a.waitSynced(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", ident.DisplayName, ident.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out of the current identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close(cmd.Context())

			if err := a.provider.SignOut(cmd.Context()); err != nil {
				return fmt.Errorf("sign out: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the active identity and sync state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close(cmd.Context())

			ident := a.bridge.Identity()
			if ident == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in (in-memory only, nothing is persisted)")
				return nil
			}
			kind := "account"
			if ident.IsAnonymous {
				kind = "guest"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\nuser id: %s\nsync: %s\nbackend: %s\n",
				displayName(ident.DisplayName), kind, ident.ID, a.bridge.State(), a.cfg.DataBackend)
			return nil
		},
	}
}

func displayName(name string) string {
	if name == "" {
		return "User"
	}
	return name
}
