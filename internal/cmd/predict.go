package cmd

import (
	"fmt"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"

	"github.com/3leaps/nimbusml/pkg/predictor"
	"github.com/3leaps/nimbusml/pkg/stager"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Run batch prediction with a trained predictor",
	Long: `Stage batch input data and run a remote batch transform job against the
trained model. The job is registered in the snapshot; fetch outputs later
with 'nimbusml results'.

Examples:
  nimbusml predict --snapshot out/tabular.json --data data/batch.csv
  nimbusml predict --snapshot out/tabular.json --data s3://bucket/batch.csv --wait
  nimbusml predict --snapshot out/tabular.json --data data/batch.csv --accept application/json`,
	RunE: runPredict,
}

var (
	predictSnapshot string
	predictData     string
	predictFormat   string
	predictAccept   string
	predictModel    string
	predictInstance string
	predictCount    int32
	predictJobName  string
	predictWait     bool
)

func init() {
	rootCmd.AddCommand(predictCmd)

	predictCmd.Flags().StringVar(&predictSnapshot, "snapshot", "", "Predictor snapshot file (required)")
	predictCmd.Flags().StringVar(&predictData, "data", "", "Batch input: local file or s3:// URI (required)")
	predictCmd.Flags().StringVar(&predictFormat, "format", "csv", "Staged data format: csv or parquet")
	predictCmd.Flags().StringVar(&predictAccept, "accept", "", "Result type: text/csv, application/json, application/x-parquet")
	predictCmd.Flags().StringVar(&predictModel, "model", "", "Model artifact override: local tarball or s3:// URI")
	predictCmd.Flags().StringVar(&predictInstance, "instance-type", "", "Transform instance type")
	predictCmd.Flags().Int32Var(&predictCount, "instance-count", 0, "Transform instance count")
	predictCmd.Flags().StringVar(&predictJobName, "job-name", "", "Transform job name (default: generated)")
	predictCmd.Flags().BoolVar(&predictWait, "wait", false, "Block until the job finishes")

	_ = predictCmd.MarkFlagRequired("snapshot")
	_ = predictCmd.MarkFlagRequired("data")
}

func runPredict(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	p, err := loadPredictor(ctx, predictSnapshot)
	if err != nil {
		return exitError(foundry.ExitInvalidArgument, "Failed to load predictor snapshot", err)
	}

	tj, err := p.Predict(ctx, predictor.PredictOptions{
		Data:          parseSource(predictData),
		Format:        stager.Format(predictFormat),
		Accept:        predictAccept,
		ModelPath:     predictModel,
		InstanceType:  predictInstance,
		InstanceCount: predictCount,
		JobName:       predictJobName,
		Wait:          predictWait,
	})
	if err != nil {
		return exitError(foundry.ExitExternalServiceUnavailable, "Batch prediction failed", err)
	}

	if _, err := p.Save(); err != nil {
		return exitError(foundry.ExitFileWriteError, "Failed to save predictor snapshot", err)
	}

	fmt.Printf("Transform job: %s\nStatus: %s\n", tj.Name(), tj.Status())
	return nil
}
