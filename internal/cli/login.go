package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as a guest or through a social provider",
	}

	cmd.AddCommand(newLoginGuestCmd())
	cmd.AddCommand(newLoginProviderCmd())

	return cmd
}

func newLoginGuestCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "guest",
		Short: "Create a guest player with a fresh id",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("%w: --name is required", errUsage)
			}
			ctx := cmd.Context()

			// An existing session must be logged out first
			app.Identity.RestoreSession(ctx)

			if _, err := app.Identity.BeginGuestLogin(ctx); err != nil {
				return err
			}
			rec, err := app.Identity.ConfirmName(ctx, name)
			if err != nil {
				return err
			}

			newOutput(cmd).Print(identityFrom(*rec, app.Identity.State()))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Player name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newLoginProviderCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "provider",
		Short: "Log in through the social provider",
		Long: `Log in through the social provider.

A provider account already linked to a player logs straight in. Otherwise
--name chooses the player name for the new account.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app.Identity.RestoreSession(ctx)

			rec, err := app.Identity.LoginWithProvider(ctx)
			if err != nil {
				return err
			}
			if rec == nil {
				if name == "" {
					app.Identity.CancelPendingLogin(ctx)
					return errNameRequired
				}
				if rec, err = app.Identity.ConfirmName(ctx, name); err != nil {
					return err
				}
			}

			newOutput(cmd).Print(identityFrom(*rec, app.Identity.State()))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Player name for a new provider account")
	cmd.Flags().StringVar(&cfg.App.ProviderUser, "provider-user", cfg.App.ProviderUser, "User signed in with the provider (env: HAUNT_PROVIDER_USER)")

	return cmd
}
