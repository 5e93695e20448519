package cmd

import (
	"fmt"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/3leaps/nimbusml/internal/observability"
	"github.com/3leaps/nimbusml/pkg/predictor"
	"github.com/3leaps/nimbusml/pkg/stager"
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Train a predictor on the execution service",
	Long: `Stage training data to S3 and run a remote training job.

Creates a new predictor from configuration and writes its snapshot into the
local output directory when the job has been submitted.

Examples:
  nimbusml fit --train data/train.csv
  nimbusml fit --train s3://bucket/data/train.csv --wait
  nimbusml fit --train data/train.csv --tune data/tune.csv --format parquet`,
	RunE: runFit,
}

var (
	fitTrain    string
	fitTune     string
	fitFormat   string
	fitJobName  string
	fitInstance string
	fitCount    int32
	fitVolume   int32
	fitWait     bool
)

func init() {
	rootCmd.AddCommand(fitCmd)

	fitCmd.Flags().StringVar(&fitTrain, "train", "", "Training data: local file or s3:// URI (required)")
	fitCmd.Flags().StringVar(&fitTune, "tune", "", "Tuning data: local file or s3:// URI")
	fitCmd.Flags().StringVar(&fitFormat, "format", "csv", "Staged data format: csv or parquet")
	fitCmd.Flags().StringVar(&fitJobName, "job-name", "", "Training job name (default: generated)")
	fitCmd.Flags().StringVar(&fitInstance, "instance-type", "", "Training instance type")
	fitCmd.Flags().Int32Var(&fitCount, "instance-count", 0, "Training instance count")
	fitCmd.Flags().Int32Var(&fitVolume, "volume-size", 0, "Training volume size in GB")
	fitCmd.Flags().BoolVar(&fitWait, "wait", false, "Block until the job finishes")

	_ = fitCmd.MarkFlagRequired("train")
}

func runFit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	p, err := newPredictor(ctx)
	if err != nil {
		return exitError(foundry.ExitInvalidArgument, "Failed to create predictor", err)
	}

	err = p.Fit(ctx, predictor.FitOptions{
		Train:         parseSource(fitTrain),
		Tune:          optionalSource(fitTune),
		Format:        stager.Format(fitFormat),
		JobName:       fitJobName,
		InstanceType:  fitInstance,
		InstanceCount: fitCount,
		VolumeSizeGB:  fitVolume,
		Wait:          fitWait,
	})
	if err != nil {
		return exitError(foundry.ExitExternalServiceUnavailable, "Training failed", err)
	}

	snapshotPath, err := p.Save()
	if err != nil {
		return exitError(foundry.ExitFileWriteError, "Failed to save predictor snapshot", err)
	}

	observability.CLILogger.Info("fit complete",
		zap.String("job", p.FitJobName()),
		zap.String("snapshot", snapshotPath))

	status, err := p.FitJobStatus(ctx)
	if err != nil {
		return exitError(foundry.ExitExternalServiceUnavailable, "Failed to read job status", err)
	}
	fmt.Printf("Training job: %s\nStatus: %s\nSnapshot: %s\n", p.FitJobName(), status, snapshotPath)
	return nil
}

func optionalSource(arg string) *stager.Source {
	if arg == "" {
		return nil
	}
	src := parseSource(arg)
	return &src
}
