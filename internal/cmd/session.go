package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/3leaps/nimbusml/internal/observability"
	"github.com/3leaps/nimbusml/pkg/cloudurl"
	"github.com/3leaps/nimbusml/pkg/execution/sagemaker"
	"github.com/3leaps/nimbusml/pkg/predictor"
	"github.com/3leaps/nimbusml/pkg/provider/s3"
	"github.com/3leaps/nimbusml/pkg/stager"
)

// buildStore creates the S3 staging provider from configuration.
func buildStore(ctx context.Context) (*s3.Provider, error) {
	st := appConfig.Storage
	if st.Bucket == "" {
		return nil, fmt.Errorf("storage.bucket is not configured (set it in nimbusml.yaml or NIMBUSML_STORAGE_BUCKET)")
	}
	return s3.New(ctx, s3.Config{
		Bucket:         st.Bucket,
		Region:         st.Region,
		Endpoint:       st.Endpoint,
		Profile:        st.Profile,
		ForcePathStyle: st.ForcePathStyle || st.Endpoint != "",
	})
}

// buildService creates the SageMaker execution service from configuration.
func buildService(ctx context.Context) (*sagemaker.Service, error) {
	return sagemaker.New(ctx, sagemaker.Config{
		Region:  appConfig.Storage.Region,
		Profile: appConfig.Storage.Profile,
	})
}

// newPredictor builds a fresh predictor from configuration.
func newPredictor(ctx context.Context) (*predictor.CloudPredictor, error) {
	store, err := buildStore(ctx)
	if err != nil {
		return nil, err
	}
	svc, err := buildService(ctx)
	if err != nil {
		return nil, err
	}

	pc := appConfig.Predictor
	typ, err := predictor.TypeByName(pc.Type)
	if err != nil {
		return nil, err
	}

	return predictor.New(predictor.Options{
		Type:            typ,
		RoleARN:         pc.RoleARN,
		LocalOutputPath: pc.LocalOutputPath,
		CloudOutputPath: pc.CloudOutputPath,
		Store:           store,
		Service:         svc,
		TrainImage:      pc.TrainImage,
		ServeImage:      pc.ServeImage,
		Logger:          observability.CLILogger,
		PollInterval:    pollInterval(),
	})
}

// loadPredictor restores a predictor from a snapshot file with fresh
// sessions.
func loadPredictor(ctx context.Context, snapshotPath string) (*predictor.CloudPredictor, error) {
	store, err := buildStore(ctx)
	if err != nil {
		return nil, err
	}
	svc, err := buildService(ctx)
	if err != nil {
		return nil, err
	}

	pc := appConfig.Predictor
	return predictor.Load(snapshotPath, predictor.LoadOptions{
		Store:        store,
		Service:      svc,
		TrainImage:   pc.TrainImage,
		ServeImage:   pc.ServeImage,
		Logger:       observability.CLILogger,
		PollInterval: pollInterval(),
	})
}

func pollInterval() time.Duration {
	if appConfig.Predictor.PollInterval > 0 {
		return appConfig.Predictor.PollInterval
	}
	return 30 * time.Second
}

// parseSource interprets a CLI data argument as a remote URI or local path.
func parseSource(arg string) stager.Source {
	if cloudurl.IsRemote(arg) {
		return stager.Source{URI: arg}
	}
	return stager.Source{LocalPath: arg}
}
