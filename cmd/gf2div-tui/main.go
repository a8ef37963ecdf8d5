// Command gf2div-tui animates a GF(2) long division one step at a time.
//
// Usage:
//
//	gf2div-tui [flags]
//
// Flags:
//
//	--dividend    Dividend bit string (default from config)
//	--divisor     Divisor bit string (default from config)
//	--speed       Playback interval in milliseconds
//	--db          History database (default: ~/.gf2div/history.db)
//	--no-history  Do not record or list divisions
//	--config      Config file (default: ~/.gf2div/config.yaml)
package main

import (
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/Mr-Dark-debug/gf2div/internal/config"
	"github.com/Mr-Dark-debug/gf2div/internal/database"
	"github.com/Mr-Dark-debug/gf2div/internal/tui"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "Config file (default ~/.gf2div/config.yaml)")
	dividend := pflag.StringP("dividend", "d", "", "Dividend bit string")
	divisor := pflag.StringP("divisor", "g", "", "Divisor bit string")
	speed := pflag.IntP("speed", "s", 0, "Playback interval in milliseconds")
	dbPath := pflag.String("db", "", "History database")
	noHistory := pflag.Bool("no-history", false, "Do not record or list divisions")
	pflag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "gf2div-tui"})

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("loading config", "err", err)
	}
	if pflag.CommandLine.Changed("dividend") {
		cfg.Dividend = *dividend
	}
	if pflag.CommandLine.Changed("divisor") {
		cfg.Divisor = *divisor
	}
	if *speed > 0 {
		cfg.SpeedMs = *speed
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	opts := tui.Options{
		Dividend:     cfg.Dividend,
		Divisor:      cfg.Divisor,
		Interval:     cfg.Speed(),
		TimeLayout:   cfg.History.TimeFormat,
		HistoryLimit: cfg.History.Limit,
	}

	if !*noHistory && cfg.DBPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			logger.Fatal("creating database directory", "err", err)
		}
		store, err := database.NewDBService(cfg.DBPath)
		if err != nil {
			logger.Fatal("opening history database", "path", cfg.DBPath, "err", err)
		}
		defer store.Close()
		opts.Store = store
	}

	p := tea.NewProgram(tui.NewModel(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("running TUI", "err", err)
		os.Exit(1)
	}
}
