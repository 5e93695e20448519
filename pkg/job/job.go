// Package job provides handles for remote training and batch transform jobs.
//
// A handle tracks one remote job by name. Status only moves through polling
// the execution service; once a terminal status is observed the handle stops
// refreshing. Remote failure is a status, never an error from Refresh.
package job

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/3leaps/nimbusml/pkg/execution"
)

// DefaultPollInterval paces status polling against the execution service.
const DefaultPollInterval = 30 * time.Second

// Options configures job handles.
type Options struct {
	// Logger receives poll progress. Defaults to a no-op logger.
	Logger *zap.Logger

	// PollInterval is the pacing between Describe calls during Wait.
	// Zero uses DefaultPollInterval.
	PollInterval time.Duration
}

func (o Options) normalize() Options {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	return o
}

// Snapshot is the persisted form of a job handle. The execution service
// reference is never persisted; restoring a snapshot re-binds a live service.
type Snapshot struct {
	Name       string           `json:"name"`
	Status     execution.Status `json:"status"`
	OutputPath string           `json:"output_path,omitempty"`
}

// FitJob is the handle for one remote training job.
type FitJob struct {
	svc  execution.Service
	opts Options

	name          string
	status        execution.Status
	artifacts     string
	failureReason string
}

// NewFitJob returns an unsubmitted fit job handle in the NotCreated state.
func NewFitJob(svc execution.Service, opts Options) *FitJob {
	return &FitJob{
		svc:    svc,
		opts:   opts.normalize(),
		status: execution.StatusNotCreated,
	}
}

// FitJobFromSnapshot restores a handle from persisted state and binds it to a
// live execution service.
func FitJobFromSnapshot(svc execution.Service, snap Snapshot, opts Options) *FitJob {
	status := snap.Status
	if status == "" {
		status = execution.StatusNotCreated
	}
	return &FitJob{
		svc:       svc,
		opts:      opts.normalize(),
		name:      snap.Name,
		status:    status,
		artifacts: snap.OutputPath,
	}
}

// AttachFitJob rebuilds a handle from the live state of an existing training
// job. Returns execution.ErrJobNotFound (wrapped) when no such job exists.
func AttachFitJob(ctx context.Context, svc execution.Service, name string, opts Options) (*FitJob, error) {
	j := &FitJob{
		svc:    svc,
		opts:   opts.normalize(),
		name:   name,
		status: execution.StatusInProgress,
	}
	if err := j.Refresh(ctx); err != nil {
		return nil, err
	}
	return j, nil
}

// Run submits the training job. With wait it polls until a terminal status.
func (j *FitJob) Run(ctx context.Context, spec execution.TrainingJobSpec, wait bool) error {
	if err := j.svc.SubmitTrainingJob(ctx, spec); err != nil {
		return err
	}
	j.name = spec.Name
	j.status = execution.StatusInProgress
	j.opts.Logger.Info("training job submitted", zap.String("job", j.name))

	if wait {
		return j.Wait(ctx)
	}
	return nil
}

// Refresh polls the service once and updates the handle. Terminal handles are
// left untouched.
func (j *FitJob) Refresh(ctx context.Context) error {
	if j.status.Terminal() {
		return nil
	}

	detail, err := j.svc.DescribeTrainingJob(ctx, j.name)
	if err != nil {
		return err
	}

	j.status = detail.Status
	j.failureReason = detail.FailureReason
	if detail.Status == execution.StatusCompleted {
		j.artifacts = detail.ModelArtifacts
	}
	return nil
}

// Wait polls until the job reaches a terminal status, paced by the handle's
// poll interval.
func (j *FitJob) Wait(ctx context.Context) error {
	limiter := rate.NewLimiter(rate.Every(j.opts.PollInterval), 1)
	for !j.status.Terminal() {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		if err := j.Refresh(ctx); err != nil {
			return err
		}
		j.opts.Logger.Debug("training job status",
			zap.String("job", j.name),
			zap.String("status", j.status.String()))
	}
	j.opts.Logger.Info("training job finished",
		zap.String("job", j.name),
		zap.String("status", j.status.String()))
	return nil
}

// Name returns the remote job name. Empty until submitted or attached.
func (j *FitJob) Name() string { return j.name }

// Status returns the last observed status.
func (j *FitJob) Status() execution.Status { return j.status }

// OutputPath returns the remote URL of the trained model artifact. Empty
// unless the job completed.
func (j *FitJob) OutputPath() string {
	if j.status != execution.StatusCompleted {
		return ""
	}
	return j.artifacts
}

// FailureReason returns the service-reported reason after a failure.
func (j *FitJob) FailureReason() string { return j.failureReason }

// Snapshot returns the persistable state of the handle.
func (j *FitJob) Snapshot() Snapshot {
	return Snapshot{
		Name:       j.name,
		Status:     j.status,
		OutputPath: j.artifacts,
	}
}

// TransformJob is the handle for one remote batch transform job.
type TransformJob struct {
	svc  execution.Service
	opts Options

	name          string
	status        execution.Status
	outputPath    string
	failureReason string
}

// NewTransformJob returns an unsubmitted transform job handle.
func NewTransformJob(svc execution.Service, opts Options) *TransformJob {
	return &TransformJob{
		svc:    svc,
		opts:   opts.normalize(),
		status: execution.StatusNotCreated,
	}
}

// TransformJobFromSnapshot restores a handle from persisted state.
func TransformJobFromSnapshot(svc execution.Service, snap Snapshot, opts Options) *TransformJob {
	status := snap.Status
	if status == "" {
		status = execution.StatusNotCreated
	}
	return &TransformJob{
		svc:        svc,
		opts:       opts.normalize(),
		name:       snap.Name,
		status:     status,
		outputPath: snap.OutputPath,
	}
}

// AttachTransformJob rebuilds a handle from the live state of an existing
// batch transform job.
func AttachTransformJob(ctx context.Context, svc execution.Service, name string, opts Options) (*TransformJob, error) {
	j := &TransformJob{
		svc:    svc,
		opts:   opts.normalize(),
		name:   name,
		status: execution.StatusInProgress,
	}
	if err := j.Refresh(ctx); err != nil {
		return nil, err
	}
	return j, nil
}

// Run submits the transform job. With wait it polls until a terminal status.
func (j *TransformJob) Run(ctx context.Context, spec execution.TransformJobSpec, wait bool) error {
	if err := j.svc.SubmitTransformJob(ctx, spec); err != nil {
		return err
	}
	j.name = spec.Name
	j.status = execution.StatusInProgress
	j.opts.Logger.Info("transform job submitted", zap.String("job", j.name))

	if wait {
		return j.Wait(ctx)
	}
	return nil
}

// Refresh polls the service once and updates the handle.
func (j *TransformJob) Refresh(ctx context.Context) error {
	if j.status.Terminal() {
		return nil
	}

	detail, err := j.svc.DescribeTransformJob(ctx, j.name)
	if err != nil {
		return err
	}

	j.status = detail.Status
	j.failureReason = detail.FailureReason
	if detail.Status == execution.StatusCompleted {
		j.outputPath = detail.OutputPath
	}
	return nil
}

// Wait polls until the job reaches a terminal status.
func (j *TransformJob) Wait(ctx context.Context) error {
	limiter := rate.NewLimiter(rate.Every(j.opts.PollInterval), 1)
	for !j.status.Terminal() {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		if err := j.Refresh(ctx); err != nil {
			return err
		}
		j.opts.Logger.Debug("transform job status",
			zap.String("job", j.name),
			zap.String("status", j.status.String()))
	}
	j.opts.Logger.Info("transform job finished",
		zap.String("job", j.name),
		zap.String("status", j.status.String()))
	return nil
}

// Name returns the remote job name.
func (j *TransformJob) Name() string { return j.name }

// Status returns the last observed status.
func (j *TransformJob) Status() execution.Status { return j.status }

// OutputPath returns the remote prefix holding result objects. Empty unless
// the job completed.
func (j *TransformJob) OutputPath() string {
	if j.status != execution.StatusCompleted {
		return ""
	}
	return j.outputPath
}

// FailureReason returns the service-reported reason after a failure.
func (j *TransformJob) FailureReason() string { return j.failureReason }

// Snapshot returns the persistable state of the handle.
func (j *TransformJob) Snapshot() Snapshot {
	return Snapshot{
		Name:       j.name,
		Status:     j.status,
		OutputPath: j.outputPath,
	}
}
