package job

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3leaps/nimbusml/pkg/execution"
)

// fakeService scripts training and transform job state transitions. Each
// Describe call consumes the next status in the sequence; the last status
// repeats.
type fakeService struct {
	submitted []string

	trainingStatuses  []execution.Status
	trainingCalls     int
	trainingArtifacts string
	trainingErr       error

	transformStatuses []execution.Status
	transformCalls    int
	transformOutput   string
}

func (f *fakeService) SubmitTrainingJob(_ context.Context, spec execution.TrainingJobSpec) error {
	f.submitted = append(f.submitted, spec.Name)
	return nil
}

func (f *fakeService) DescribeTrainingJob(_ context.Context, name string) (*execution.TrainingJobDetail, error) {
	if f.trainingErr != nil {
		return nil, f.trainingErr
	}
	status := f.trainingStatuses[min(f.trainingCalls, len(f.trainingStatuses)-1)]
	f.trainingCalls++

	detail := &execution.TrainingJobDetail{Name: name, Status: status}
	if status == execution.StatusCompleted {
		detail.ModelArtifacts = f.trainingArtifacts
	}
	if status == execution.StatusFailed {
		detail.FailureReason = "AlgorithmError: training script exited with code 1"
	}
	return detail, nil
}

func (f *fakeService) SubmitTransformJob(_ context.Context, spec execution.TransformJobSpec) error {
	f.submitted = append(f.submitted, spec.Name)
	return nil
}

func (f *fakeService) DescribeTransformJob(_ context.Context, name string) (*execution.TransformJobDetail, error) {
	status := f.transformStatuses[min(f.transformCalls, len(f.transformStatuses)-1)]
	f.transformCalls++

	detail := &execution.TransformJobDetail{Name: name, Status: status}
	if status == execution.StatusCompleted {
		detail.OutputPath = f.transformOutput
	}
	return detail, nil
}

func (f *fakeService) CreateEndpoint(context.Context, execution.EndpointSpec) error { return nil }
func (f *fakeService) DescribeEndpoint(context.Context, string) (*execution.EndpointDetail, error) {
	return nil, execution.ErrEndpointNotFound
}
func (f *fakeService) InvokeEndpoint(context.Context, execution.InvokeRequest) ([]byte, error) {
	return nil, nil
}
func (f *fakeService) DeleteEndpoint(context.Context, string) error       { return nil }
func (f *fakeService) DeleteEndpointConfig(context.Context, string) error { return nil }
func (f *fakeService) DeleteModel(context.Context, string) error          { return nil }

func fastOpts() Options {
	return Options{PollInterval: time.Millisecond}
}

func TestFitJob_RunNoWait(t *testing.T) {
	svc := &fakeService{trainingStatuses: []execution.Status{execution.StatusInProgress}}
	j := NewFitJob(svc, fastOpts())

	assert.Equal(t, execution.StatusNotCreated, j.Status())

	err := j.Run(context.Background(), execution.TrainingJobSpec{Name: "fit-1"}, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"fit-1"}, svc.submitted)
	assert.Equal(t, execution.StatusInProgress, j.Status())
	assert.Empty(t, j.OutputPath())
}

func TestFitJob_RunWait(t *testing.T) {
	svc := &fakeService{
		trainingStatuses: []execution.Status{
			execution.StatusInProgress,
			execution.StatusInProgress,
			execution.StatusCompleted,
		},
		trainingArtifacts: "s3://bucket/output/fit-1/model.tar.gz",
	}
	j := NewFitJob(svc, fastOpts())

	err := j.Run(context.Background(), execution.TrainingJobSpec{Name: "fit-1"}, true)
	require.NoError(t, err)

	assert.Equal(t, execution.StatusCompleted, j.Status())
	assert.Equal(t, "s3://bucket/output/fit-1/model.tar.gz", j.OutputPath())
}

func TestFitJob_FailureIsStatusNotError(t *testing.T) {
	svc := &fakeService{trainingStatuses: []execution.Status{execution.StatusFailed}}
	j := NewFitJob(svc, fastOpts())

	err := j.Run(context.Background(), execution.TrainingJobSpec{Name: "fit-1"}, true)
	require.NoError(t, err)

	assert.Equal(t, execution.StatusFailed, j.Status())
	assert.Contains(t, j.FailureReason(), "AlgorithmError")
	assert.Empty(t, j.OutputPath())
}

func TestFitJob_RefreshStopsAtTerminal(t *testing.T) {
	svc := &fakeService{trainingStatuses: []execution.Status{execution.StatusCompleted}}
	j := NewFitJob(svc, fastOpts())

	require.NoError(t, j.Run(context.Background(), execution.TrainingJobSpec{Name: "fit-1"}, true))
	callsAfterWait := svc.trainingCalls

	// Terminal handles never hit the service again.
	require.NoError(t, j.Refresh(context.Background()))
	assert.Equal(t, callsAfterWait, svc.trainingCalls)
}

func TestAttachFitJob(t *testing.T) {
	svc := &fakeService{
		trainingStatuses:  []execution.Status{execution.StatusCompleted},
		trainingArtifacts: "s3://bucket/output/model.tar.gz",
	}

	j, err := AttachFitJob(context.Background(), svc, "existing-job", fastOpts())
	require.NoError(t, err)

	assert.Equal(t, "existing-job", j.Name())
	assert.Equal(t, execution.StatusCompleted, j.Status())
	assert.Equal(t, "s3://bucket/output/model.tar.gz", j.OutputPath())
}

func TestAttachFitJob_NotFound(t *testing.T) {
	svc := &fakeService{trainingErr: &execution.ServiceError{
		Op:   "DescribeTrainingJob",
		Name: "ghost",
		Err:  execution.ErrJobNotFound,
	}}

	_, err := AttachFitJob(context.Background(), svc, "ghost", fastOpts())
	require.Error(t, err)
	assert.True(t, execution.IsJobNotFound(err))
}

func TestFitJob_SnapshotRoundTrip(t *testing.T) {
	svc := &fakeService{
		trainingStatuses:  []execution.Status{execution.StatusCompleted},
		trainingArtifacts: "s3://bucket/output/model.tar.gz",
	}
	j := NewFitJob(svc, fastOpts())
	require.NoError(t, j.Run(context.Background(), execution.TrainingJobSpec{Name: "fit-1"}, true))

	restored := FitJobFromSnapshot(&fakeService{}, j.Snapshot(), fastOpts())

	assert.Equal(t, "fit-1", restored.Name())
	assert.Equal(t, execution.StatusCompleted, restored.Status())
	assert.Equal(t, "s3://bucket/output/model.tar.gz", restored.OutputPath())
}

func TestTransformJob_RunWait(t *testing.T) {
	svc := &fakeService{
		transformStatuses: []execution.Status{
			execution.StatusInProgress,
			execution.StatusCompleted,
		},
		transformOutput: "s3://bucket/batch_transform/results",
	}
	j := NewTransformJob(svc, fastOpts())

	err := j.Run(context.Background(), execution.TransformJobSpec{Name: "transform-1"}, true)
	require.NoError(t, err)

	assert.Equal(t, execution.StatusCompleted, j.Status())
	assert.Equal(t, "s3://bucket/batch_transform/results", j.OutputPath())
}

func TestTransformJob_Wait_ContextCancelled(t *testing.T) {
	svc := &fakeService{transformStatuses: []execution.Status{execution.StatusInProgress}}
	j := NewTransformJob(svc, Options{PollInterval: time.Hour})

	require.NoError(t, j.Run(context.Background(), execution.TransformJobSpec{Name: "t"}, false))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := j.Wait(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
