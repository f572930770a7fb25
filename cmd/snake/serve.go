package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/web"
)

var flagWebAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the browser server",
	Long: `Start an HTTP server that serves the game to browsers.

Each browser tab gets its own game over a websocket. The best score is
shared by everyone using the same backend.

Endpoints:
  /                 - Game page
  /ws               - Game websocket
  /api/highscore    - GET the best score, DELETE to reset it
  /healthz          - Liveness probe
  /metrics          - Prometheus metrics

Examples:
  snake serve                    # Listen on :8080
  snake serve --addr :9000
  snake serve --backend postgres`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagWebAddr, "addr", "", "HTTP listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, _ []string) {
	cfg, logger, scores := setup(cmd, "web")
	defer scores.Close()

	if flagWebAddr != "" {
		cfg.Web.Addr = flagWebAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := web.NewServer(web.Options{
		Config: cfg.Web,
		Speed:  cfg.Speed,
		Seed:   cfg.Seed,
		Scores: scores,
		Logger: logger,
	})

	logger.Info("best score backend", "backend", scores.Backend())
	if err := server.ListenAndServe(ctx); err != nil {
		scores.Close()
		fatal(err)
	}
}
