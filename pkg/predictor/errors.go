package predictor

import (
	"errors"

	"github.com/3leaps/nimbusml/pkg/stager"
)

// Precondition violations. These are caller errors checked before any remote
// call is made.
var (
	// ErrAlreadyFit indicates the predictor already owns a training job and
	// cannot run a second one.
	ErrAlreadyFit = errors.New("predictor already has a training job")

	// ErrEndpointAttached indicates the predictor already holds an endpoint.
	ErrEndpointAttached = errors.New("an endpoint is already attached")

	// ErrNoEndpoint indicates the operation needs an attached endpoint.
	ErrNoEndpoint = errors.New("no endpoint attached")

	// ErrNoTrainedModel indicates the operation needs a completed training
	// job or an explicit model artifact.
	ErrNoTrainedModel = errors.New("no trained model available")
)

// Invalid argument errors.
var (
	// ErrInvalidAcceptType indicates a real-time accept type outside the
	// allow-list.
	ErrInvalidAcceptType = errors.New("invalid accept type")

	// ErrUnsupportedFormat indicates a wire format the stager cannot produce.
	ErrUnsupportedFormat = stager.ErrUnsupportedFormat

	// ErrNotTarball indicates a local model artifact that is not a gzipped
	// tar archive.
	ErrNotTarball = stager.ErrNotTarball
)

// Lookup errors.
var (
	// ErrNoSuchJob indicates the named transform job is not in the registry.
	ErrNoSuchJob = errors.New("no such transform job")

	// ErrNoResults indicates the transform job has no downloadable results.
	ErrNoResults = errors.New("no prediction results available")
)

// IsAlreadyFit checks if the error indicates a second fit was attempted.
func IsAlreadyFit(err error) bool {
	return errors.Is(err, ErrAlreadyFit)
}

// IsEndpointAttached checks if the error indicates an endpoint conflict.
func IsEndpointAttached(err error) bool {
	return errors.Is(err, ErrEndpointAttached)
}

// IsNoEndpoint checks if the error indicates a missing endpoint.
func IsNoEndpoint(err error) bool {
	return errors.Is(err, ErrNoEndpoint)
}

// IsNoTrainedModel checks if the error indicates a missing model artifact.
func IsNoTrainedModel(err error) bool {
	return errors.Is(err, ErrNoTrainedModel)
}

// IsInvalidAcceptType checks if the error indicates a rejected accept type.
func IsInvalidAcceptType(err error) bool {
	return errors.Is(err, ErrInvalidAcceptType)
}

// IsNoSuchJob checks if the error indicates an unknown transform job.
func IsNoSuchJob(err error) bool {
	return errors.Is(err, ErrNoSuchJob)
}
