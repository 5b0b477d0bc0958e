package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/huangsam/racechart/internal/server"
	"github.com/spf13/cobra"
)

// serveCmd serves the chart and its hover interaction over HTTP.
var serveCmd = &cobra.Command{
	Use:   "serve [source]",
	Short: "Serve the chart and hover API over HTTP",
	Long: `Build the chart once and serve it until interrupted.

Routes:
- GET    /chart.svg    the rendered chart
- GET    /api/points   placed points, ticks and legend as JSON
- POST   /api/hover    {"index", "x", "y", "viewportWidth", "viewportHeight"} -> tooltip overlay
- DELETE /api/hover    remove the overlay
- GET    /healthz      liveness
- GET    /metrics      Prometheus metrics

Examples:
  # Serve on the default address
  racechart serve

  # Serve a local dataset to a browser app on another origin
  racechart serve ./cyclist-data.json --addr :9090 --cors-origins http://localhost:3000`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		return server.Run(ctx, cfg, cacheManager)
	},
}
