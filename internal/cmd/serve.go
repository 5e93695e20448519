package cmd

import (
	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"

	"github.com/3leaps/nimbusml/internal/observability"
	"github.com/3leaps/nimbusml/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve predictor state over HTTP for monitoring",
	Long: `Run a read-only HTTP server exposing the snapshot's predictor info and
job states. Useful for watching long-running training or transform jobs.

Endpoints:
  GET /healthz          liveness probe
  GET /v1/info          full predictor info
  GET /v1/jobs          training and transform job states
  GET /v1/jobs/{name}   one job by name

Examples:
  nimbusml serve --snapshot out/tabular.json
  nimbusml serve --snapshot out/tabular.json --port 9000`,
	RunE: runServe,
}

var (
	serveSnapshot string
	serveHost     string
	servePort     int
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveSnapshot, "snapshot", "", "Predictor snapshot file (required)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Listen host (default: from config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (default: from config)")

	_ = serveCmd.MarkFlagRequired("snapshot")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	p, err := loadPredictor(ctx, serveSnapshot)
	if err != nil {
		return exitError(foundry.ExitInvalidArgument, "Failed to load predictor snapshot", err)
	}

	cfg := appConfig.Server
	if serveHost != "" {
		cfg.Host = serveHost
	}
	if servePort > 0 {
		cfg.Port = servePort
	}

	srv := server.New(cfg, p, observability.CLILogger)
	if err := srv.Start(ctx); err != nil {
		return exitError(foundry.ExitExternalServiceUnavailable, "Monitoring server failed", err)
	}
	return nil
}
