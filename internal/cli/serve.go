package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Mr-Dark-debug/gf2div/internal/database"
	"github.com/Mr-Dark-debug/gf2div/internal/server"
)

// NewServeCommand runs the HTTP API until interrupted.
func NewServeCommand() *cobra.Command {
	var (
		addr      string
		dbPath    string
		noHistory bool
		batch     int
		flush     time.Duration
		maxBits   int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve divisions over HTTP",
		Long: `Starts the JSON API:

  GET /api/divide?dividend=...&divisor=...
  GET /api/multiply?a=...&b=...
  GET /api/history?limit=N&divisor=...
  GET /api/metrics, /metrics, /health

Every division served is recorded in the history database in batches.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cmd, "server")

			sc := server.Config{
				Addr:          cfg.Server.Addr,
				BatchSize:     cfg.Server.BatchSize,
				FlushInterval: cfg.Server.FlushInterval,
				MaxBits:       maxBits,
			}
			if addr != "" {
				sc.Addr = addr
			}
			if batch > 0 {
				sc.BatchSize = batch
			}
			if flush > 0 {
				sc.FlushInterval = flush
			}

			var store database.Store
			if !noHistory {
				if dbPath == "" {
					dbPath = cfg.DBPath
				}
				db, err := openStore(dbPath)
				if err != nil {
					return err
				}
				defer db.Close()
				store = db
				logger.Debug("history enabled", "db", db.Path())
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(sc, store, logger)
			if err := srv.Start(ctx); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out)
			fmt.Fprintln(out, "  GF2DIV SERVER")
			fmt.Fprintln(out)
			fmt.Fprintf(out, "  API:     http://%s/api/divide\n", srv.Addr())
			fmt.Fprintf(out, "  Metrics: http://%s/metrics\n", srv.Addr())
			if store != nil {
				fmt.Fprintf(out, "  DB:      %s\n", dbPath)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "  Press Ctrl+C to stop.")
			fmt.Fprintln(out)

			<-srv.Done()

			m := srv.Metrics()
			logger.Info("served", "requests", m.Requests, "divisions", m.Divisions, "recorded", m.Recorded)
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	cmd.Flags().StringVar(&dbPath, "db", "", "History database (default from config)")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record divisions")
	cmd.Flags().IntVar(&batch, "batch", 0, "History batch size (default from config)")
	cmd.Flags().DurationVar(&flush, "flush", 0, "History flush interval (default from config)")
	cmd.Flags().IntVar(&maxBits, "max-bits", server.DefaultConfig().MaxBits, "Longest operand accepted")

	return cmd
}
