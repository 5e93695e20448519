package sagemaker

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sagemaker/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3leaps/nimbusml/pkg/execution"
)

type mockAPIError struct {
	code    string
	message string
}

func (e *mockAPIError) Error() string                 { return fmt.Sprintf("%s: %s", e.code, e.message) }
func (e *mockAPIError) ErrorCode() string             { return e.code }
func (e *mockAPIError) ErrorMessage() string          { return e.message }
func (e *mockAPIError) ErrorFault() smithy.ErrorFault { return smithy.FaultUnknown }

var _ smithy.APIError = (*mockAPIError)(nil)

func TestTrainingStatus(t *testing.T) {
	tests := []struct {
		in       types.TrainingJobStatus
		expected execution.Status
	}{
		{types.TrainingJobStatusInProgress, execution.StatusInProgress},
		{types.TrainingJobStatusCompleted, execution.StatusCompleted},
		{types.TrainingJobStatusFailed, execution.StatusFailed},
		{types.TrainingJobStatusStopping, execution.StatusStopping},
		{types.TrainingJobStatusStopped, execution.StatusStopped},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.expected, trainingStatus(tt.in))
		})
	}
}

func TestTransformStatus(t *testing.T) {
	assert.Equal(t, execution.StatusCompleted, transformStatus(types.TransformJobStatusCompleted))
	assert.Equal(t, execution.StatusFailed, transformStatus(types.TransformJobStatusFailed))
	assert.Equal(t, execution.StatusInProgress, transformStatus(types.TransformJobStatusInProgress))
}

func TestEndpointStatus(t *testing.T) {
	tests := []struct {
		in       types.EndpointStatus
		expected execution.Status
	}{
		{types.EndpointStatusInService, execution.StatusCompleted},
		{types.EndpointStatusCreating, execution.StatusInProgress},
		{types.EndpointStatusUpdating, execution.StatusInProgress},
		{types.EndpointStatusSystemUpdating, execution.StatusInProgress},
		{types.EndpointStatusRollingBack, execution.StatusInProgress},
		{types.EndpointStatusFailed, execution.StatusFailed},
		{types.EndpointStatusDeleting, execution.StatusStopping},
		{types.EndpointStatusOutOfService, execution.StatusStopped},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.expected, endpointStatus(tt.in))
		})
	}
}

func TestWrapError_ResourceNotFound(t *testing.T) {
	s := &Service{}

	err := s.wrapError("DescribeTrainingJob", "missing-job", &mockAPIError{
		code:    "ResourceNotFound",
		message: "Requested resource not found",
	})

	var svcErr *execution.ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, "DescribeTrainingJob", svcErr.Op)
	assert.Equal(t, "missing-job", svcErr.Name)
	assert.True(t, execution.IsJobNotFound(err))
}

func TestWrapError_ValidationNotFound(t *testing.T) {
	s := &Service{}

	err := s.wrapError("DescribeTrainingJob", "missing-job", &mockAPIError{
		code:    "ValidationException",
		message: "Could not find training job with name missing-job",
	})

	assert.True(t, execution.IsJobNotFound(err))
}

func TestWrapError_EndpointOps(t *testing.T) {
	s := &Service{}

	apiErr := &mockAPIError{code: "ResourceNotFound", message: "not found"}

	assert.True(t, execution.IsEndpointNotFound(s.wrapError("DescribeEndpoint", "ep", apiErr)))
	assert.True(t, execution.IsEndpointNotFound(s.wrapError("DeleteEndpoint", "ep", apiErr)))
	assert.True(t, execution.IsEndpointNotFound(s.wrapError("DeleteEndpointConfig", "ep", apiErr)))
	assert.True(t, execution.IsJobNotFound(s.wrapError("DescribeTransformJob", "job", apiErr)))
}

func TestWrapError_Throttled(t *testing.T) {
	s := &Service{}

	err := s.wrapError("DescribeEndpoint", "ep", &mockAPIError{
		code:    "ThrottlingException",
		message: "Rate exceeded",
	})

	assert.True(t, errors.Is(err, execution.ErrThrottled))
}

func TestWrapError_PassThrough(t *testing.T) {
	s := &Service{}

	underlying := errors.New("connection reset")
	err := s.wrapError("SubmitTrainingJob", "job", underlying)

	assert.True(t, errors.Is(err, underlying))
	assert.False(t, execution.IsJobNotFound(err))
}
