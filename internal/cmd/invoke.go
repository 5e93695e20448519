package cmd

import (
	"os"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"
)

var invokeCmd = &cobra.Command{
	Use:   "invoke",
	Short: "Run real-time prediction against the deployed endpoint",
	Long: `Send local data through the snapshot's endpoint and write the raw
response to stdout.

Examples:
  nimbusml invoke --snapshot out/tabular.json --data data/test.csv
  nimbusml invoke --snapshot out/tabular.json --data data/test.csv --accept text/csv`,
	RunE: runInvoke,
}

var (
	invokeSnapshot string
	invokeData     string
	invokeAccept   string
)

func init() {
	rootCmd.AddCommand(invokeCmd)

	invokeCmd.Flags().StringVar(&invokeSnapshot, "snapshot", "", "Predictor snapshot file (required)")
	invokeCmd.Flags().StringVar(&invokeData, "data", "", "Local input file (required)")
	invokeCmd.Flags().StringVar(&invokeAccept, "accept", "", "Response type: text/csv, application/json, application/x-parquet")

	_ = invokeCmd.MarkFlagRequired("snapshot")
	_ = invokeCmd.MarkFlagRequired("data")
}

func runInvoke(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	p, err := loadPredictor(ctx, invokeSnapshot)
	if err != nil {
		return exitError(foundry.ExitInvalidArgument, "Failed to load predictor snapshot", err)
	}

	out, err := p.PredictRealTime(ctx, parseSource(invokeData), invokeAccept)
	if err != nil {
		return exitError(foundry.ExitExternalServiceUnavailable, "Real-time prediction failed", err)
	}

	if _, err := os.Stdout.Write(out); err != nil {
		return exitError(foundry.ExitFileWriteError, "Failed to write response", err)
	}
	return nil
}
