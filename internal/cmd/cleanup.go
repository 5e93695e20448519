package cmd

import (
	"fmt"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete the deployed endpoint and its backing resources",
	Long: `Delete the snapshot's endpoint, its endpoint configuration, and its
model from the execution service, then detach it from the snapshot.

Use --detach to release the endpoint from the snapshot without deleting any
remote resources.

Examples:
  nimbusml cleanup --snapshot out/tabular.json
  nimbusml cleanup --snapshot out/tabular.json --detach`,
	RunE: runCleanup,
}

var (
	cleanupSnapshot string
	cleanupDetach   bool
)

func init() {
	rootCmd.AddCommand(cleanupCmd)

	cleanupCmd.Flags().StringVar(&cleanupSnapshot, "snapshot", "", "Predictor snapshot file (required)")
	cleanupCmd.Flags().BoolVar(&cleanupDetach, "detach", false, "Detach without deleting remote resources")

	_ = cleanupCmd.MarkFlagRequired("snapshot")
}

func runCleanup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	p, err := loadPredictor(ctx, cleanupSnapshot)
	if err != nil {
		return exitError(foundry.ExitInvalidArgument, "Failed to load predictor snapshot", err)
	}

	if cleanupDetach {
		name, err := p.DetachEndpoint()
		if err != nil {
			return exitError(foundry.ExitInvalidArgument, "Failed to detach endpoint", err)
		}
		fmt.Printf("Detached endpoint: %s\n", name)
	} else {
		name := p.EndpointName()
		if err := p.CleanupDeployment(ctx); err != nil {
			return exitError(foundry.ExitExternalServiceUnavailable, "Failed to clean up deployment", err)
		}
		fmt.Printf("Deleted endpoint: %s\n", name)
	}

	if _, err := p.Save(); err != nil {
		return exitError(foundry.ExitFileWriteError, "Failed to save predictor snapshot", err)
	}
	return nil
}
