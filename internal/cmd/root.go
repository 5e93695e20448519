// Package cmd implements the nimbusml command line interface.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/3leaps/nimbusml/internal/config"
	"github.com/3leaps/nimbusml/internal/observability"
)

var rootCmd = &cobra.Command{
	Use:   "nimbusml",
	Short: "Train, deploy, and run ML predictors on managed cloud infrastructure",
	Long: `nimbusml orchestrates predictor training, deployment, and prediction on a
managed ML execution service, staging data and model artifacts through S3.

State lives in a JSON snapshot written next to the local output. Commands
that mutate remote state (fit, deploy, predict, cleanup) update the snapshot
so later commands, or another machine, can pick up where you left off.

Examples:
  nimbusml fit --train data/train.csv --wait
  nimbusml status --snapshot out/tabular.json
  nimbusml deploy --snapshot out/tabular.json --wait
  nimbusml invoke --snapshot out/tabular.json --data data/test.csv
  nimbusml predict --snapshot out/tabular.json --data s3://bucket/batch.csv
  nimbusml results --snapshot out/tabular.json
  nimbusml cleanup --snapshot out/tabular.json`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp()
	},
}

var (
	cfgFile  string
	logLevel string

	appConfig *config.Config
)

// versionInfo is populated by the build via SetVersionInfo.
var versionInfo = struct {
	Version   string
	Commit    string
	BuildDate string
}{
	Version:   "dev",
	Commit:    "HEAD",
	BuildDate: "unknown",
}

// SetVersionInfo records build metadata for the version command.
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.BuildDate = buildDate
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ./nimbusml.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// No config or logger needed for version output.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("nimbusml %s (commit %s, built %s)\n",
			versionInfo.Version, versionInfo.Commit, versionInfo.BuildDate)
	},
}

// initApp loads configuration and initializes the shared CLI logger.
func initApp() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	appConfig = cfg

	level := cfg.Logging.Level
	if logLevel != "" {
		level = logLevel
	}
	if err := observability.InitCLILogger(level); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// cliError carries a process exit code alongside a user-facing message.
type cliError struct {
	code int
	msg  string
	err  error
}

func (e *cliError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *cliError) Unwrap() error { return e.err }

// exitError builds a cliError for RunE handlers to return. Codes come from
// the foundry exit code catalog.
func exitError[T ~int](code T, msg string, err error) error {
	return &cliError{code: int(code), msg: msg, err: err}
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	defer observability.Sync()

	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	var ce *cliError
	if errors.As(err, &ce) {
		observability.CLILogger.Error(ce.msg, zap.Error(ce.err))
		fmt.Fprintln(os.Stderr, "Error:", ce.Error())
		return ce.code
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	return 1
}
