package cmd

import (
	"fmt"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the status of a predictor's jobs",
	Long: `Poll the execution service for the predictor's training job status, or a
batch transform job when --job is given.

Examples:
  nimbusml status --snapshot out/tabular.json
  nimbusml status --snapshot out/tabular.json --job my-batch-job`,
	RunE: runStatus,
}

var (
	statusSnapshot string
	statusJob      string
	statusBatch    bool
)

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVar(&statusSnapshot, "snapshot", "", "Predictor snapshot file (required)")
	statusCmd.Flags().StringVar(&statusJob, "job", "", "Transform job name (default: most recent)")
	statusCmd.Flags().BoolVar(&statusBatch, "batch", false, "Show batch transform status instead of training status")

	_ = statusCmd.MarkFlagRequired("snapshot")
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	p, err := loadPredictor(ctx, statusSnapshot)
	if err != nil {
		return exitError(foundry.ExitInvalidArgument, "Failed to load predictor snapshot", err)
	}

	if statusBatch || statusJob != "" {
		status, err := p.TransformJobStatus(ctx, statusJob)
		if err != nil {
			return exitError(foundry.ExitExternalServiceUnavailable, "Failed to read transform job status", err)
		}
		name := statusJob
		if name == "" {
			names := p.TransformJobNames()
			name = names[len(names)-1]
		}
		fmt.Printf("Transform job: %s\nStatus: %s\n", name, status)
		return nil
	}

	status, err := p.FitJobStatus(ctx)
	if err != nil {
		return exitError(foundry.ExitExternalServiceUnavailable, "Failed to read training job status", err)
	}
	fmt.Printf("Training job: %s\nStatus: %s\n", p.FitJobName(), status)
	return nil
}
