package cli

import (
	"github.com/spf13/cobra"

	"github.com/Mr-Dark-debug/gf2div/internal/database"
	"github.com/Mr-Dark-debug/gf2div/internal/report"
)

// NewHistoryCommand lists recorded divisions.
func NewHistoryCommand() *cobra.Command {
	var (
		limit   int
		divisor string
		dbPath  string
		format  string
		stats   bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded divisions",
		Long: `Lists divisions recorded by divide --save, the TUI and the HTTP server,
newest first. --stats adds aggregate numbers over the whole history.`,
		Example: `  gf2div history --limit 5
  gf2div history --divisor 11001 --format json
  gf2div history --stats --format markdown`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if dbPath == "" {
				dbPath = cfg.DBPath
			}
			if limit <= 0 {
				limit = cfg.History.Limit
			}

			store, err := openStore(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			filter := database.DivisionFilter{Limit: limit}
			if divisor != "" {
				filter.Divisor = &divisor
			}
			h, err := report.NewAnalyzer(store).History(filter)
			if err != nil {
				return err
			}
			if !stats {
				h.Stats = nil
			}

			p := report.NewPrinter(cmd.OutOrStdout(), useColor(cmd), cfg.History.TimeFormat)
			return p.History(h, f)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum entries (default from config)")
	cmd.Flags().StringVar(&divisor, "divisor", "", "Only show divisions by this divisor")
	cmd.Flags().StringVar(&dbPath, "db", "", "History database (default from config)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, markdown, json")
	cmd.Flags().BoolVar(&stats, "stats", false, "Include aggregate statistics")

	return cmd
}
