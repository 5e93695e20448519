// Package sagemaker implements the execution service contract on AWS
// SageMaker.
//
// Training jobs, batch transform jobs, and real-time endpoints map directly
// onto the SageMaker APIs of the same name. The control-plane client
// (sagemaker) and data-plane client (sagemakerruntime) share one AWS
// configuration.
package sagemaker

import (
	"context"
	"errors"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sagemaker"
	"github.com/aws/aws-sdk-go-v2/service/sagemaker/types"
	"github.com/aws/aws-sdk-go-v2/service/sagemakerruntime"
	"github.com/aws/smithy-go"

	"github.com/3leaps/nimbusml/pkg/execution"
)

// Config configures the SageMaker execution service.
type Config struct {
	// Region is the AWS region. Empty lets the SDK resolve from
	// environment/profile.
	Region string

	// Profile is the AWS profile name to use from shared config.
	Profile string
}

// Service implements execution.Service on SageMaker.
type Service struct {
	client  *sagemaker.Client
	runtime *sagemakerruntime.Client
	region  string
}

// Ensure Service implements the interface.
var _ execution.Service = (*Service)(nil)

// New creates a SageMaker-backed execution service using the AWS SDK v2
// default credential chain.
func New(ctx context.Context, cfg Config) (*Service, error) {
	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, &execution.ServiceError{Op: "New", Err: err}
	}

	return &Service{
		client:  sagemaker.NewFromConfig(awsCfg),
		runtime: sagemakerruntime.NewFromConfig(awsCfg),
		region:  awsCfg.Region,
	}, nil
}

// Region returns the region the service clients were built for.
func (s *Service) Region() string {
	return s.region
}

// SubmitTrainingJob starts a SageMaker training job.
func (s *Service) SubmitTrainingJob(ctx context.Context, spec execution.TrainingJobSpec) error {
	channels := make([]types.Channel, 0, len(spec.Inputs))
	for _, in := range spec.Inputs {
		channels = append(channels, types.Channel{
			ChannelName: aws.String(in.Name),
			DataSource: &types.DataSource{
				S3DataSource: &types.S3DataSource{
					S3DataType:             types.S3DataTypeS3Prefix,
					S3Uri:                  aws.String(in.URI),
					S3DataDistributionType: types.S3DataDistributionFullyReplicated,
				},
			},
		})
	}

	hyperparameters := map[string]string{}
	for k, v := range spec.Hyperparameters {
		hyperparameters[k] = v
	}
	if spec.EntryPoint != "" {
		hyperparameters["sagemaker_program"] = spec.EntryPoint
	}

	maxRuntime := spec.MaxRuntimeSeconds
	if maxRuntime <= 0 {
		maxRuntime = defaultMaxRuntimeSeconds
	}

	input := &sagemaker.CreateTrainingJobInput{
		TrainingJobName: aws.String(spec.Name),
		RoleArn:         aws.String(spec.RoleARN),
		AlgorithmSpecification: &types.AlgorithmSpecification{
			TrainingImage:     aws.String(spec.Image),
			TrainingInputMode: types.TrainingInputModeFile,
		},
		InputDataConfig: channels,
		OutputDataConfig: &types.OutputDataConfig{
			S3OutputPath: aws.String(spec.OutputPath),
		},
		ResourceConfig: &types.ResourceConfig{
			InstanceType:   types.TrainingInstanceType(spec.InstanceType),
			InstanceCount:  aws.Int32(spec.InstanceCount),
			VolumeSizeInGB: aws.Int32(spec.VolumeSizeGB),
		},
		StoppingCondition: &types.StoppingCondition{
			MaxRuntimeInSeconds: aws.Int32(maxRuntime),
		},
		HyperParameters: hyperparameters,
	}

	if _, err := s.client.CreateTrainingJob(ctx, input); err != nil {
		return s.wrapError("SubmitTrainingJob", spec.Name, err)
	}
	return nil
}

// DescribeTrainingJob returns the live state of a training job.
func (s *Service) DescribeTrainingJob(ctx context.Context, name string) (*execution.TrainingJobDetail, error) {
	out, err := s.client.DescribeTrainingJob(ctx, &sagemaker.DescribeTrainingJobInput{
		TrainingJobName: aws.String(name),
	})
	if err != nil {
		return nil, s.wrapError("DescribeTrainingJob", name, err)
	}

	detail := &execution.TrainingJobDetail{
		Name:          name,
		Status:        trainingStatus(out.TrainingJobStatus),
		FailureReason: aws.ToString(out.FailureReason),
	}
	if out.ModelArtifacts != nil {
		detail.ModelArtifacts = aws.ToString(out.ModelArtifacts.S3ModelArtifacts)
	}
	return detail, nil
}

// SubmitTransformJob registers the model and starts a batch transform job.
func (s *Service) SubmitTransformJob(ctx context.Context, spec execution.TransformJobSpec) error {
	if err := s.createModel(ctx, spec.Model); err != nil {
		return s.wrapError("SubmitTransformJob", spec.Name, err)
	}

	input := &sagemaker.CreateTransformJobInput{
		TransformJobName: aws.String(spec.Name),
		ModelName:        aws.String(spec.Model.Name),
		TransformInput: &types.TransformInput{
			DataSource: &types.TransformDataSource{
				S3DataSource: &types.TransformS3DataSource{
					S3DataType: types.S3DataTypeS3Prefix,
					S3Uri:      aws.String(spec.InputURI),
				},
			},
			ContentType: aws.String(spec.ContentType),
			SplitType:   types.SplitType(spec.SplitType),
		},
		TransformOutput: &types.TransformOutput{
			S3OutputPath: aws.String(spec.OutputPath),
			Accept:       aws.String(spec.Accept),
			AssembleWith: types.AssemblyTypeLine,
		},
		TransformResources: &types.TransformResources{
			InstanceType:  types.TransformInstanceType(spec.InstanceType),
			InstanceCount: aws.Int32(spec.InstanceCount),
		},
	}

	if _, err := s.client.CreateTransformJob(ctx, input); err != nil {
		return s.wrapError("SubmitTransformJob", spec.Name, err)
	}
	return nil
}

// DescribeTransformJob returns the live state of a batch transform job.
func (s *Service) DescribeTransformJob(ctx context.Context, name string) (*execution.TransformJobDetail, error) {
	out, err := s.client.DescribeTransformJob(ctx, &sagemaker.DescribeTransformJobInput{
		TransformJobName: aws.String(name),
	})
	if err != nil {
		return nil, s.wrapError("DescribeTransformJob", name, err)
	}

	detail := &execution.TransformJobDetail{
		Name:          name,
		Status:        transformStatus(out.TransformJobStatus),
		FailureReason: aws.ToString(out.FailureReason),
	}
	if out.TransformOutput != nil {
		detail.OutputPath = aws.ToString(out.TransformOutput.S3OutputPath)
	}
	return detail, nil
}

// CreateEndpoint registers the model, creates an endpoint configuration
// reusing the endpoint name, and creates the endpoint.
func (s *Service) CreateEndpoint(ctx context.Context, spec execution.EndpointSpec) error {
	if err := s.createModel(ctx, spec.Model); err != nil {
		return s.wrapError("CreateEndpoint", spec.Name, err)
	}

	_, err := s.client.CreateEndpointConfig(ctx, &sagemaker.CreateEndpointConfigInput{
		EndpointConfigName: aws.String(spec.Name),
		ProductionVariants: []types.ProductionVariant{
			{
				VariantName:          aws.String("AllTraffic"),
				ModelName:            aws.String(spec.Model.Name),
				InstanceType:         types.ProductionVariantInstanceType(spec.InstanceType),
				InitialInstanceCount: aws.Int32(spec.InitialInstanceCount),
			},
		},
	})
	if err != nil {
		return s.wrapError("CreateEndpoint", spec.Name, err)
	}

	_, err = s.client.CreateEndpoint(ctx, &sagemaker.CreateEndpointInput{
		EndpointName:       aws.String(spec.Name),
		EndpointConfigName: aws.String(spec.Name),
	})
	if err != nil {
		return s.wrapError("CreateEndpoint", spec.Name, err)
	}
	return nil
}

// DescribeEndpoint returns the live state of an endpoint.
func (s *Service) DescribeEndpoint(ctx context.Context, name string) (*execution.EndpointDetail, error) {
	out, err := s.client.DescribeEndpoint(ctx, &sagemaker.DescribeEndpointInput{
		EndpointName: aws.String(name),
	})
	if err != nil {
		return nil, s.wrapError("DescribeEndpoint", name, err)
	}

	return &execution.EndpointDetail{
		Name:          name,
		Status:        endpointStatus(out.EndpointStatus),
		FailureReason: aws.ToString(out.FailureReason),
	}, nil
}

// InvokeEndpoint performs one real-time inference request.
func (s *Service) InvokeEndpoint(ctx context.Context, req execution.InvokeRequest) ([]byte, error) {
	out, err := s.runtime.InvokeEndpoint(ctx, &sagemakerruntime.InvokeEndpointInput{
		EndpointName: aws.String(req.EndpointName),
		Body:         req.Body,
		ContentType:  aws.String(req.ContentType),
		Accept:       aws.String(req.Accept),
	})
	if err != nil {
		return nil, s.wrapError("InvokeEndpoint", req.EndpointName, err)
	}
	return out.Body, nil
}

// DeleteEndpoint removes the endpoint.
func (s *Service) DeleteEndpoint(ctx context.Context, name string) error {
	_, err := s.client.DeleteEndpoint(ctx, &sagemaker.DeleteEndpointInput{
		EndpointName: aws.String(name),
	})
	if err != nil {
		return s.wrapError("DeleteEndpoint", name, err)
	}
	return nil
}

// DeleteEndpointConfig removes the endpoint configuration.
func (s *Service) DeleteEndpointConfig(ctx context.Context, name string) error {
	_, err := s.client.DeleteEndpointConfig(ctx, &sagemaker.DeleteEndpointConfigInput{
		EndpointConfigName: aws.String(name),
	})
	if err != nil {
		return s.wrapError("DeleteEndpointConfig", name, err)
	}
	return nil
}

// DeleteModel removes the model.
func (s *Service) DeleteModel(ctx context.Context, name string) error {
	_, err := s.client.DeleteModel(ctx, &sagemaker.DeleteModelInput{
		ModelName: aws.String(name),
	})
	if err != nil {
		return s.wrapError("DeleteModel", name, err)
	}
	return nil
}

func (s *Service) createModel(ctx context.Context, spec execution.ModelSpec) error {
	env := map[string]string{}
	for k, v := range spec.Environment {
		env[k] = v
	}
	if spec.EntryPoint != "" {
		env["SAGEMAKER_PROGRAM"] = spec.EntryPoint
	}

	_, err := s.client.CreateModel(ctx, &sagemaker.CreateModelInput{
		ModelName:        aws.String(spec.Name),
		ExecutionRoleArn: aws.String(spec.RoleARN),
		PrimaryContainer: &types.ContainerDefinition{
			Image:        aws.String(spec.Image),
			ModelDataUrl: aws.String(spec.ModelDataURL),
			Environment:  env,
		},
	})
	return err
}

// defaultMaxRuntimeSeconds bounds training jobs at 24h when the caller does
// not set a limit.
const defaultMaxRuntimeSeconds = 24 * 60 * 60

// wrapError converts SageMaker errors to execution errors with appropriate
// sentinel errors.
func (s *Service) wrapError(op, name string, err error) error {
	wrapped := &execution.ServiceError{Op: op, Name: name, Err: err}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		switch {
		case code == "ResourceNotFound" || code == "ResourceNotFoundException":
			wrapped.Err = notFoundFor(op)
		case code == "ValidationException" && strings.Contains(apiErr.ErrorMessage(), "Could not find"):
			// Describe* for an unknown name surfaces as a validation error.
			wrapped.Err = notFoundFor(op)
		case code == "ThrottlingException" || code == "TooManyRequestsException":
			wrapped.Err = execution.ErrThrottled
		}
	}

	return wrapped
}

func notFoundFor(op string) error {
	if strings.Contains(op, "Endpoint") {
		return execution.ErrEndpointNotFound
	}
	return execution.ErrJobNotFound
}

// trainingStatus maps the service's training job status onto the shared
// status enum. The vocabularies coincide.
func trainingStatus(s types.TrainingJobStatus) execution.Status {
	switch s {
	case types.TrainingJobStatusInProgress:
		return execution.StatusInProgress
	case types.TrainingJobStatusCompleted:
		return execution.StatusCompleted
	case types.TrainingJobStatusFailed:
		return execution.StatusFailed
	case types.TrainingJobStatusStopping:
		return execution.StatusStopping
	case types.TrainingJobStatusStopped:
		return execution.StatusStopped
	default:
		return execution.StatusNotCreated
	}
}

func transformStatus(s types.TransformJobStatus) execution.Status {
	switch s {
	case types.TransformJobStatusInProgress:
		return execution.StatusInProgress
	case types.TransformJobStatusCompleted:
		return execution.StatusCompleted
	case types.TransformJobStatusFailed:
		return execution.StatusFailed
	case types.TransformJobStatusStopping:
		return execution.StatusStopping
	case types.TransformJobStatusStopped:
		return execution.StatusStopped
	default:
		return execution.StatusNotCreated
	}
}

// endpointStatus folds deployment states into the shared status enum so the
// orchestrator polls a single vocabulary.
func endpointStatus(s types.EndpointStatus) execution.Status {
	switch s {
	case types.EndpointStatusInService:
		return execution.StatusCompleted
	case types.EndpointStatusCreating, types.EndpointStatusUpdating, types.EndpointStatusSystemUpdating, types.EndpointStatusRollingBack:
		return execution.StatusInProgress
	case types.EndpointStatusFailed:
		return execution.StatusFailed
	case types.EndpointStatusDeleting:
		return execution.StatusStopping
	case types.EndpointStatusOutOfService:
		return execution.StatusStopped
	default:
		return execution.StatusNotCreated
	}
}
