// Package cli implements the gf2div command tree.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Mr-Dark-debug/gf2div/internal/config"
	"github.com/Mr-Dark-debug/gf2div/internal/database"
)

// loadConfig reads the file named by --config, or the default location.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// newLogger returns a stderr logger; --verbose turns on debug output.
func newLogger(cmd *cobra.Command, prefix string) *log.Logger {
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix:          prefix,
		ReportTimestamp: true,
	})
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// useColor reports whether output goes straight to a terminal.
func useColor(cmd *cobra.Command) bool {
	if cmd.OutOrStdout() != os.Stdout {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// openStore opens the history database at path, creating its directory.
func openStore(path string) (*database.DBService, error) {
	if path == "" {
		return nil, fmt.Errorf("no history database configured")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}
	store, err := database.NewDBService(path)
	if err != nil {
		return nil, fmt.Errorf("opening history database %s: %w", path, err)
	}
	return store, nil
}
