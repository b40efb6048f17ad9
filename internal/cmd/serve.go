package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/Digital-Shane/like-that/internal/server"
	"github.com/spf13/cobra"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve the query pipeline over HTTP.

  POST /api/query   {"query": "..."} -> result envelope
  GET  /health      liveness
  GET  /api/stats   per-intent outcome counters`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if listenAddr != "" {
			cfg.ListenAddr = listenAddr
		}

		logger := newLogger(cfg, cmd.ErrOrStderr())
		stats := server.NewStats()
		d, err := newDispatcher(cfg, logger, stats)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(d, stats, server.Options{
			Addr:           cfg.ListenAddr,
			RequestTimeout: cfg.RequestTimeout(),
			Logger:         logger,
		})
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "addr", "", "Listen address (overrides config and PORT)")
	rootCmd.AddCommand(serveCmd)
}
