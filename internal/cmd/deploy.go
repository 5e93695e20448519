package cmd

import (
	"fmt"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"

	"github.com/3leaps/nimbusml/pkg/predictor"
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy the trained predictor behind a real-time endpoint",
	Long: `Stage the trained model and create a real-time inference endpoint.

The model defaults to the snapshot's completed training job artifact;
--model overrides it with a local tarball or s3:// URI.

Examples:
  nimbusml deploy --snapshot out/tabular.json --wait
  nimbusml deploy --snapshot out/tabular.json --endpoint-name my-endpoint
  nimbusml deploy --snapshot out/tabular.json --model model.tar.gz`,
	RunE: runDeploy,
}

var (
	deploySnapshot string
	deployName     string
	deployModel    string
	deployInstance string
	deployCount    int32
	deployWait     bool
	deployAttach   string
)

func init() {
	rootCmd.AddCommand(deployCmd)

	deployCmd.Flags().StringVar(&deploySnapshot, "snapshot", "", "Predictor snapshot file (required)")
	deployCmd.Flags().StringVar(&deployName, "endpoint-name", "", "Endpoint name (default: generated)")
	deployCmd.Flags().StringVar(&deployModel, "model", "", "Model artifact override: local tarball or s3:// URI")
	deployCmd.Flags().StringVar(&deployInstance, "instance-type", "", "Endpoint instance type")
	deployCmd.Flags().Int32Var(&deployCount, "instance-count", 0, "Endpoint instance count")
	deployCmd.Flags().BoolVar(&deployWait, "wait", false, "Block until the endpoint is in service")
	deployCmd.Flags().StringVar(&deployAttach, "attach", "", "Attach an existing endpoint instead of deploying")

	_ = deployCmd.MarkFlagRequired("snapshot")
}

func runDeploy(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	p, err := loadPredictor(ctx, deploySnapshot)
	if err != nil {
		return exitError(foundry.ExitInvalidArgument, "Failed to load predictor snapshot", err)
	}

	if deployAttach != "" {
		if err := p.AttachEndpoint(ctx, deployAttach); err != nil {
			return exitError(foundry.ExitExternalServiceUnavailable, "Failed to attach endpoint", err)
		}
	} else {
		err := p.Deploy(ctx, predictor.DeployOptions{
			EndpointName:         deployName,
			ModelPath:            deployModel,
			InstanceType:         deployInstance,
			InitialInstanceCount: deployCount,
			Wait:                 deployWait,
		})
		if err != nil {
			return exitError(foundry.ExitExternalServiceUnavailable, "Deployment failed", err)
		}
	}

	if _, err := p.Save(); err != nil {
		return exitError(foundry.ExitFileWriteError, "Failed to save predictor snapshot", err)
	}

	fmt.Printf("Endpoint: %s\n", p.EndpointName())
	return nil
}
