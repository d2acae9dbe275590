package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/haunt/internal/factory"
)

var (
	cfg *Config
	app *factory.App
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()
	app = nil

	rootCmd := &cobra.Command{
		Use:   "haunt",
		Short: "Player identity for the haunt game client",
		Long: `haunt manages the local player identity used by the game client.

It logs in as a guest or through a social provider, remembers the player
between runs, and hands the logged in player to the game launcher.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}

			a, err := factory.New(cfg.App, newLogger(cmd.ErrOrStderr(), cfg.Verbose))
			if err != nil {
				return err
			}
			app = a
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.App.StorageType, "storage", cfg.App.StorageType, "Preference storage: memory, redis, sqlite (env: HAUNT_STORAGE_TYPE)")
	rootCmd.PersistentFlags().StringVar(&cfg.App.PrefsPath, "prefs", cfg.App.PrefsPath, "Preference file path (env: HAUNT_PREFS_PATH)")
	rootCmd.PersistentFlags().StringVar(&cfg.App.RedisURL, "redis-url", cfg.App.RedisURL, "Redis URL (env: HAUNT_REDIS_URL)")
	rootCmd.PersistentFlags().StringVar(&cfg.App.Profile, "profile", cfg.App.Profile, "Preference profile (env: HAUNT_PROFILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newStartCmd())

	return rootCmd
}

// Run executes the CLI with args and returns the process exit code
func Run(args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if closeErr := closeApp(); err == nil {
		err = closeErr
	}
	if err != nil {
		NewOutput(cfg.Output, stdout, stderr).PrintError(err)
		return exitCode(err)
	}
	return 0
}

// Execute runs the root command
func Execute() {
	if code := Run(os.Args[1:], os.Stdout, os.Stderr); code != 0 {
		os.Exit(code)
	}
}

func closeApp() error {
	if app == nil {
		return nil
	}
	err := app.Close()
	app = nil
	return err
}

func newOutput(cmd *cobra.Command) *Output {
	return NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
}
