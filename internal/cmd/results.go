package cmd

import (
	"fmt"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Download batch prediction results",
	Long: `Download the result objects of a batch transform job. Defaults to the
most recently run job; pass --job to pick another.

Examples:
  nimbusml results --snapshot out/tabular.json
  nimbusml results --snapshot out/tabular.json --job my-batch-job --dest ./results`,
	RunE: runResults,
}

var (
	resultsSnapshot string
	resultsJob      string
	resultsDest     string
)

func init() {
	rootCmd.AddCommand(resultsCmd)

	resultsCmd.Flags().StringVar(&resultsSnapshot, "snapshot", "", "Predictor snapshot file (required)")
	resultsCmd.Flags().StringVar(&resultsJob, "job", "", "Transform job name (default: most recent)")
	resultsCmd.Flags().StringVar(&resultsDest, "dest", "", "Destination directory (default: <local output>/results)")

	_ = resultsCmd.MarkFlagRequired("snapshot")
}

func runResults(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	p, err := loadPredictor(ctx, resultsSnapshot)
	if err != nil {
		return exitError(foundry.ExitInvalidArgument, "Failed to load predictor snapshot", err)
	}

	paths, err := p.DownloadPredictResults(ctx, resultsJob, resultsDest)
	if err != nil {
		return exitError(foundry.ExitExternalServiceUnavailable, "Failed to download results", err)
	}

	for _, path := range paths {
		fmt.Println(path)
	}
	return nil
}
