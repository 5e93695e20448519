package predictor

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// trainingConfig is the document shipped to the training container on the
// config channel. The training script reads it to construct and fit the
// predictor.
type trainingConfig struct {
	PredictorType     string         `yaml:"predictor_type"`
	PredictorInitArgs map[string]any `yaml:"predictor_init_args"`
	PredictorFitArgs  map[string]any `yaml:"predictor_fit_args"`
	Leaderboard       bool           `yaml:"leaderboard"`
}

// writeTrainingConfig renders the config document to path.
func writeTrainingConfig(path, predictorType string, initArgs, fitArgs map[string]any) error {
	if initArgs == nil {
		initArgs = map[string]any{}
	}
	if fitArgs == nil {
		fitArgs = map[string]any{}
	}

	doc := trainingConfig{
		PredictorType:     predictorType,
		PredictorInitArgs: initArgs,
		PredictorFitArgs:  fitArgs,
		Leaderboard:       true,
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("predictor: marshal training config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("predictor: write training config: %w", err)
	}
	return nil
}
