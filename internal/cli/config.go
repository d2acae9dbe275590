package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mcoot/haunt/internal/config"
)

// Output formats
const (
	formatText = "text"
	formatJSON = "json"
)

// Config holds CLI configuration. Flags override App, which is read from the environment.
type Config struct {
	App     config.Config
	Output  string
	Verbose bool

	loadErr error
}

// DefaultConfig returns a Config populated from the environment
func DefaultConfig() *Config {
	appCfg, err := config.Load()
	return &Config{
		App:     appCfg,
		Output:  getEnvOrDefault("HAUNT_OUTPUT", formatText),
		Verbose: false,
		loadErr: err,
	}
}

// Validate reports environment errors and checks CLI-only settings
func (c *Config) Validate() error {
	if c.loadErr != nil {
		return c.loadErr
	}
	if c.Output != formatText && c.Output != formatJSON {
		return fmt.Errorf("%w: output must be %q or %q, got %q", errUsage, formatText, formatJSON, c.Output)
	}
	return nil
}

// newLogger writes human readable logs; warnings only unless verbose
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
