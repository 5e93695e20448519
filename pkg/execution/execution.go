// Package execution defines the contract with the remote execution service
// that runs training jobs, batch transform jobs, and real-time endpoints.
//
// The orchestration layer never talks to the cloud SDK directly; it drives
// this interface. Implementations live in subpackages (sagemaker) and fakes
// live in the tests that need them.
package execution

import "context"

// Service is the remote execution service consumed by job handles and the
// orchestrator.
//
// All operations are synchronous API calls; long-running work (training,
// transform, deployment) is started by a Submit/Create call and observed by
// polling the matching Describe call.
type Service interface {
	// SubmitTrainingJob starts a remote training job.
	SubmitTrainingJob(ctx context.Context, spec TrainingJobSpec) error

	// DescribeTrainingJob returns the live state of a training job.
	// Returns ErrJobNotFound if the service has no job with that name.
	DescribeTrainingJob(ctx context.Context, name string) (*TrainingJobDetail, error)

	// SubmitTransformJob starts a remote batch transform job. The referenced
	// model is created on the service as part of submission.
	SubmitTransformJob(ctx context.Context, spec TransformJobSpec) error

	// DescribeTransformJob returns the live state of a batch transform job.
	DescribeTransformJob(ctx context.Context, name string) (*TransformJobDetail, error)

	// CreateEndpoint deploys a model behind a persistent real-time endpoint.
	CreateEndpoint(ctx context.Context, spec EndpointSpec) error

	// DescribeEndpoint returns the live state of an endpoint. Deployment
	// states are folded into the shared Status enum.
	DescribeEndpoint(ctx context.Context, name string) (*EndpointDetail, error)

	// InvokeEndpoint performs one real-time inference request.
	InvokeEndpoint(ctx context.Context, req InvokeRequest) ([]byte, error)

	// DeleteEndpoint removes the endpoint.
	DeleteEndpoint(ctx context.Context, name string) error

	// DeleteEndpointConfig removes the endpoint configuration created during
	// deployment.
	DeleteEndpointConfig(ctx context.Context, name string) error

	// DeleteModel removes the model created during deployment.
	DeleteModel(ctx context.Context, name string) error
}

// Channel is one named training input (train, tune, config) addressed by a
// remote URL.
type Channel struct {
	Name string
	URI  string
}

// TrainingJobSpec describes one remote training job submission.
type TrainingJobSpec struct {
	// Name is the unique training job name.
	Name string

	// RoleARN grants the service access to the staging bucket.
	RoleARN string

	// Image is the training container image.
	Image string

	// EntryPoint is the training script executed inside the container.
	EntryPoint string

	// Inputs are the staged input channels (train, optional tune, config).
	Inputs []Channel

	// OutputPath is the remote prefix where the service writes the trained
	// model artifact.
	OutputPath string

	InstanceType  string
	InstanceCount int32

	// VolumeSizeGB is the size of the attached training volume. Must be large
	// enough to hold the input channels.
	VolumeSizeGB int32

	// MaxRuntimeSeconds bounds the job; zero uses the service default.
	MaxRuntimeSeconds int32

	// Hyperparameters are passed through to the training script.
	Hyperparameters map[string]string
}

// TrainingJobDetail is the observed state of a training job.
type TrainingJobDetail struct {
	Name string

	Status Status

	// ModelArtifacts is the remote URL of the trained model archive.
	// Populated only once the job completes.
	ModelArtifacts string

	// FailureReason is the service-reported reason for a failed job.
	FailureReason string
}

// ModelSpec describes a servable model registered on the execution service.
type ModelSpec struct {
	// Name is the model name on the service.
	Name string

	// Image is the inference container image.
	Image string

	// ModelDataURL is the remote URL of the model tarball.
	ModelDataURL string

	// RoleARN grants the serving container access to the model data.
	RoleARN string

	// EntryPoint is the serving script executed inside the container.
	EntryPoint string

	// Environment is extra container environment, merged over the entry
	// point setting.
	Environment map[string]string
}

// TransformJobSpec describes one batch transform submission.
type TransformJobSpec struct {
	// Name is the unique transform job name.
	Name string

	// Model is registered on the service before the transform starts.
	Model ModelSpec

	// InputURI is the staged batch input (an object or prefix).
	InputURI string

	// ContentType is the MIME type of the input records.
	ContentType string

	// SplitType controls how the service splits the input into requests
	// ("Line" for CSV).
	SplitType string

	// Accept is the MIME type requested for results.
	Accept string

	// OutputPath is the remote prefix where result objects are written.
	OutputPath string

	InstanceType  string
	InstanceCount int32
}

// TransformJobDetail is the observed state of a batch transform job.
type TransformJobDetail struct {
	Name string

	Status Status

	// OutputPath is the remote prefix holding result objects.
	// Populated from the service's own record of the job.
	OutputPath string

	// FailureReason is the service-reported reason for a failed job.
	FailureReason string
}

// EndpointSpec describes one real-time endpoint deployment.
type EndpointSpec struct {
	// Name is the endpoint name. The model and endpoint configuration
	// created during deployment reuse this name.
	Name string

	// Model is registered on the service before the endpoint is created.
	Model ModelSpec

	InstanceType         string
	InitialInstanceCount int32
}

// EndpointDetail is the observed state of an endpoint.
type EndpointDetail struct {
	Name string

	Status Status

	// FailureReason is the service-reported reason for a failed deployment.
	FailureReason string
}

// InvokeRequest is one real-time inference request.
type InvokeRequest struct {
	EndpointName string

	// Body is the serialized payload.
	Body []byte

	// ContentType is the MIME type of Body.
	ContentType string

	// Accept is the MIME type requested for the response.
	Accept string
}
