package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/haunt/internal/services/launcher"
)

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the remembered player",
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, ok := app.Identity.RestoreSession(cmd.Context())
			if !ok {
				return errNotLoggedIn
			}

			newOutput(cmd).Print(identityFrom(*rec, app.Identity.State()))
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the remembered player",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := newOutput(cmd)

			rec, ok := app.Identity.RestoreSession(ctx)
			if !ok {
				out.PrintMessage("Not logged in")
				return nil
			}
			if err := app.Identity.Logout(ctx); err != nil {
				return err
			}

			out.PrintMessage(fmt.Sprintf("Logged out %s", rec.PlayerName))
			return nil
		},
	}
}

func newStartCmd() *cobra.Command {
	var scene string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the game as the remembered player",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			rec, ok := app.Identity.RestoreSession(ctx)
			if !ok {
				return errNotLoggedIn
			}
			if err := app.Identity.StartGame(ctx, scene); err != nil {
				return err
			}

			if scene == "" {
				scene = launcher.DefaultScene
			}
			session, _ := app.Identity.Session()
			newOutput(cmd).Print(Launch{
				SessionID: session.ID,
				Identity:  identityFrom(*rec, app.Identity.State()),
				Scene:     scene,
			})
			return nil
		},
	}

	cmd.Flags().StringVar(&scene, "scene", cfg.App.Scene, "Scene to load (env: HAUNT_SCENE)")

	return cmd
}
