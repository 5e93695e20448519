// Package predictor orchestrates training, deployment, and prediction
// against a managed ML execution service.
//
// A CloudPredictor owns at most one training job, an insertion-ordered set of
// batch transform jobs, and at most one live endpoint. All remote work is
// staged through a single storage bucket. State survives process restarts via
// JSON snapshots; live sessions are rebuilt on load.
package predictor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/3leaps/nimbusml/pkg/archive"
	"github.com/3leaps/nimbusml/pkg/cloudurl"
	"github.com/3leaps/nimbusml/pkg/endpoint"
	"github.com/3leaps/nimbusml/pkg/execution"
	"github.com/3leaps/nimbusml/pkg/job"
	"github.com/3leaps/nimbusml/pkg/provider"
	"github.com/3leaps/nimbusml/pkg/stager"
)

// Defaults for remote resources.
const (
	DefaultInstanceType  = "ml.m5.2xlarge"
	DefaultInstanceCount = int32(1)
	DefaultVolumeSizeGB  = int32(100)

	// realTimePayloadWarnBytes triggers a warning for oversized real-time
	// payloads. Large payloads belong in batch prediction.
	realTimePayloadWarnBytes = 5 << 20
)

// validAcceptTypes is the allow-list for inference response types.
var validAcceptTypes = map[string]bool{
	"application/x-parquet": true,
	"text/csv":              true,
	"application/json":      true,
}

// DefaultAcceptType is used when the caller does not request a response type.
const DefaultAcceptType = "application/json"

// Options configures a new CloudPredictor.
type Options struct {
	// Type selects the predictor variant (Tabular, Text, or custom).
	Type TypeSpec

	// RoleARN grants the execution service access to the staging bucket.
	RoleARN string

	// LocalOutputPath is the local working directory. Defaults to a
	// timestamped directory under the current working directory. Created at
	// init with a utils/ scratch subdirectory; reuse logs a warning.
	LocalOutputPath string

	// CloudOutputPath is the remote output location (s3://bucket/prefix).
	// Defaults to a timestamped prefix in the store's bucket. Must reference
	// the store's bucket.
	CloudOutputPath string

	// Store stages artifacts. Required.
	Store provider.Provider

	// Service runs the remote jobs and endpoints. Required.
	Service execution.Service

	// TrainImage and ServeImage are the default container images for
	// training and inference. Operations may override per call.
	TrainImage string
	ServeImage string

	// Logger defaults to a no-op logger.
	Logger *zap.Logger

	// PollInterval paces job and deployment status polling.
	PollInterval time.Duration
}

// CloudPredictor orchestrates one predictor's cloud lifecycle.
//
// Not safe for concurrent use; callers needing a read view use Info().
type CloudPredictor struct {
	typ          TypeSpec
	roleARN      string
	localPath    string
	cloudBucket  string
	cloudPrefix  string
	trainImage   string
	serveImage   string
	store        provider.Provider
	svc          execution.Service
	log          *zap.Logger
	pollInterval time.Duration

	stage         *stager.Stager
	fitJob        *job.FitJob
	transformJobs *job.Registry[*job.TransformJob]
	ep            *endpoint.Endpoint
}

// New creates a CloudPredictor and prepares its local working directory.
func New(opts Options) (*CloudPredictor, error) {
	return newPredictor(opts, true)
}

func newPredictor(opts Options, warnExisting bool) (*CloudPredictor, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("predictor: a storage provider is required")
	}
	if opts.Service == nil {
		return nil, fmt.Errorf("predictor: an execution service is required")
	}
	if opts.Type.Name == "" {
		return nil, fmt.Errorf("predictor: a predictor type is required")
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	ts := time.Now().UTC().Format("20060102T150405")

	localPath := opts.LocalOutputPath
	if localPath == "" {
		localPath = fmt.Sprintf("nimbusml-output-%s", ts)
	}

	cloudPath := opts.CloudOutputPath
	if cloudPath == "" {
		cloudPath = fmt.Sprintf("s3://%s/nimbusml-%s", opts.Store.Bucket(), ts)
	}
	obj, err := cloudurl.Parse(cloudPath)
	if err != nil {
		return nil, err
	}
	if obj.Bucket != opts.Store.Bucket() {
		return nil, fmt.Errorf("predictor: cloud output path bucket %q does not match store bucket %q",
			obj.Bucket, opts.Store.Bucket())
	}

	if _, statErr := os.Stat(localPath); statErr == nil && warnExisting {
		log.Warn("local output path already exists, contents may be overwritten",
			zap.String("path", localPath))
	}
	if err := os.MkdirAll(filepath.Join(localPath, "utils"), 0o755); err != nil {
		return nil, fmt.Errorf("predictor: create local output path: %w", err)
	}

	p := &CloudPredictor{
		typ:           opts.Type,
		roleARN:       opts.RoleARN,
		localPath:     localPath,
		cloudBucket:   obj.Bucket,
		cloudPrefix:   strings.Trim(obj.Key, "/"),
		trainImage:    opts.TrainImage,
		serveImage:    opts.ServeImage,
		store:         opts.Store,
		svc:           opts.Service,
		log:           log,
		pollInterval:  opts.PollInterval,
		transformJobs: job.NewRegistry[*job.TransformJob](),
	}
	p.stage = stager.New(opts.Store, filepath.Join(localPath, "utils"), path.Join(p.cloudPrefix, "utils"), log)
	p.fitJob = job.NewFitJob(opts.Service, p.jobOpts())
	return p, nil
}

func (p *CloudPredictor) jobOpts() job.Options {
	return job.Options{Logger: p.log, PollInterval: p.pollInterval}
}

func (p *CloudPredictor) cloudURL(parts ...string) string {
	return "s3://" + p.cloudBucket + "/" + cloudurl.Join(p.cloudPrefix, parts...)
}

func (p *CloudPredictor) generateName(kind string) string {
	ts := time.Now().UTC().Format("20060102T150405")
	return fmt.Sprintf("nimbusml-%s-%s-%s", kind, ts, uuid.NewString()[:8])
}

// LocalOutputPath returns the local working directory.
func (p *CloudPredictor) LocalOutputPath() string { return p.localPath }

// CloudOutputPath returns the remote output location.
func (p *CloudPredictor) CloudOutputPath() string { return p.cloudURL() }

// FitOptions configures one training run.
type FitOptions struct {
	// Train is the training data source. Required.
	Train stager.Source

	// Tune is the optional tuning data source.
	Tune *stager.Source

	// InitArgs and FitArgs are forwarded to the training script through the
	// generated config document.
	InitArgs map[string]any
	FitArgs  map[string]any

	// Format is the staged wire format. Defaults to CSV.
	Format stager.Format

	// Image overrides the predictor's default training image.
	Image string

	InstanceType      string
	InstanceCount     int32
	VolumeSizeGB      int32
	MaxRuntimeSeconds int32

	// Hyperparameters are passed through to the training job.
	Hyperparameters map[string]string

	// JobName overrides the generated training job name.
	JobName string

	// Wait blocks until the job reaches a terminal status.
	Wait bool
}

// canFit reports whether a new training job may be started. A completed or
// running job blocks refitting; a failed or stopped one may be retried.
func (p *CloudPredictor) canFit() bool {
	switch p.fitJob.Status() {
	case execution.StatusNotCreated, execution.StatusFailed, execution.StatusStopped:
		return true
	default:
		return false
	}
}

// Fit stages the training data and submits a remote training job. A second
// fit on an instance whose job completed (or is still running) returns
// ErrAlreadyFit.
func (p *CloudPredictor) Fit(ctx context.Context, opts FitOptions) error {
	if !p.canFit() {
		return fmt.Errorf("%w: %s (%s)", ErrAlreadyFit, p.fitJob.Name(), p.fitJob.Status())
	}
	if p.roleARN == "" {
		return fmt.Errorf("predictor: a role ARN is required to fit")
	}
	image := opts.Image
	if image == "" {
		image = p.trainImage
	}
	if image == "" {
		return fmt.Errorf("predictor: a training image is required to fit")
	}

	format := opts.Format
	if format == "" {
		format = stager.FormatCSV
	}

	if err := p.store.EnsureBucket(ctx); err != nil {
		return err
	}

	jobName := opts.JobName
	if jobName == "" {
		jobName = p.generateName("fit")
	}

	configPath := filepath.Join(p.localPath, "utils", "config.yaml")
	if err := writeTrainingConfig(configPath, p.typ.Name, opts.InitArgs, opts.FitArgs); err != nil {
		return err
	}
	configURI, err := p.store.Upload(ctx, configPath, path.Join(p.cloudPrefix, "utils", "config.yaml"))
	if err != nil {
		return err
	}

	trainURI, err := p.stage.Stage(ctx, opts.Train, "train", format)
	if err != nil {
		return err
	}

	inputs := []execution.Channel{
		{Name: "train", URI: trainURI},
		{Name: "config", URI: configURI},
	}
	if opts.Tune != nil {
		tuneURI, err := p.stage.Stage(ctx, *opts.Tune, "tune", format)
		if err != nil {
			return err
		}
		inputs = append(inputs, execution.Channel{Name: "tune", URI: tuneURI})
	}

	spec := execution.TrainingJobSpec{
		Name:              jobName,
		RoleARN:           p.roleARN,
		Image:             image,
		EntryPoint:        p.typ.TrainEntryPoint,
		Inputs:            inputs,
		OutputPath:        p.cloudURL("output"),
		InstanceType:      orDefault(opts.InstanceType, DefaultInstanceType),
		InstanceCount:     orDefaultInt32(opts.InstanceCount, DefaultInstanceCount),
		VolumeSizeGB:      orDefaultInt32(opts.VolumeSizeGB, DefaultVolumeSizeGB),
		MaxRuntimeSeconds: opts.MaxRuntimeSeconds,
		Hyperparameters:   opts.Hyperparameters,
	}

	p.fitJob = job.NewFitJob(p.svc, p.jobOpts())
	return p.fitJob.Run(ctx, spec, opts.Wait)
}

// AttachJob binds the predictor to an existing remote training job,
// replacing any previous fit job handle.
func (p *CloudPredictor) AttachJob(ctx context.Context, name string) error {
	j, err := job.AttachFitJob(ctx, p.svc, name, p.jobOpts())
	if err != nil {
		return err
	}
	p.fitJob = j
	return nil
}

// FitJobStatus polls the training job once and returns its status.
func (p *CloudPredictor) FitJobStatus(ctx context.Context) (execution.Status, error) {
	if err := p.fitJob.Refresh(ctx); err != nil {
		return execution.StatusNotCreated, err
	}
	return p.fitJob.Status(), nil
}

// FitJobName returns the training job name. Empty until fit or attach.
func (p *CloudPredictor) FitJobName() string { return p.fitJob.Name() }

// modelArtifact resolves the trained model location, refreshing the fit job
// when needed.
func (p *CloudPredictor) modelArtifact(ctx context.Context) (string, error) {
	if p.fitJob.Name() == "" {
		return "", ErrNoTrainedModel
	}
	if err := p.fitJob.Refresh(ctx); err != nil {
		return "", err
	}
	artifact := p.fitJob.OutputPath()
	if artifact == "" {
		return "", fmt.Errorf("%w: training job %s is %s",
			ErrNoTrainedModel, p.fitJob.Name(), p.fitJob.Status())
	}
	return artifact, nil
}

// DownloadTrainedPredictor downloads the trained model tarball into the
// local output path and returns its path.
func (p *CloudPredictor) DownloadTrainedPredictor(ctx context.Context) (string, error) {
	artifact, err := p.modelArtifact(ctx)
	if err != nil {
		return "", err
	}

	obj, err := cloudurl.Parse(artifact)
	if err != nil {
		return "", err
	}
	if obj.Bucket != p.store.Bucket() {
		return "", fmt.Errorf("predictor: model artifact %s is outside bucket %s", artifact, p.store.Bucket())
	}

	dest := filepath.Join(p.localPath, "model.tar.gz")
	if err := p.store.Download(ctx, obj.Key, dest); err != nil {
		return "", err
	}

	p.log.Info("downloaded trained predictor", zap.String("path", dest))
	return dest, nil
}

// ToLocalPredictor downloads and extracts the trained model, then opens it
// with the predictor type's loader.
func (p *CloudPredictor) ToLocalPredictor(ctx context.Context) (LocalPredictor, error) {
	tarball, err := p.DownloadTrainedPredictor(ctx)
	if err != nil {
		return nil, err
	}

	dest := filepath.Join(p.localPath, "model")
	if err := archive.ExtractTarGz(tarball, dest); err != nil {
		return nil, err
	}

	return p.typ.Loader(dest)
}

// DeployOptions configures one endpoint deployment.
type DeployOptions struct {
	// EndpointName overrides the generated endpoint name.
	EndpointName string

	// ModelPath overrides the fit job's artifact: a local tarball or an
	// s3:// URI.
	ModelPath string

	// Image overrides the predictor's default serving image.
	Image string

	InstanceType         string
	InitialInstanceCount int32

	// Wait blocks until the deployment reaches a terminal status.
	Wait bool
}

// Deploy stages the trained model behind a new real-time endpoint. At most
// one endpoint may be attached; a second deploy returns ErrEndpointAttached.
func (p *CloudPredictor) Deploy(ctx context.Context, opts DeployOptions) error {
	if p.ep != nil {
		return fmt.Errorf("%w: %s", ErrEndpointAttached, p.ep.Name())
	}
	if p.roleARN == "" {
		return fmt.Errorf("predictor: a role ARN is required to deploy")
	}
	image := opts.Image
	if image == "" {
		image = p.serveImage
	}
	if image == "" {
		return fmt.Errorf("predictor: a serving image is required to deploy")
	}

	modelPath := opts.ModelPath
	if modelPath == "" {
		artifact, err := p.modelArtifact(ctx)
		if err != nil {
			return err
		}
		modelPath = artifact
	}

	modelURI, err := p.stage.StageModel(ctx, modelPath, path.Join(p.cloudPrefix, "model"))
	if err != nil {
		return err
	}

	name := opts.EndpointName
	if name == "" {
		name = p.generateName("endpoint")
	}

	spec := execution.EndpointSpec{
		Name: name,
		Model: execution.ModelSpec{
			Name:         name,
			Image:        image,
			ModelDataURL: modelURI,
			RoleARN:      p.roleARN,
			EntryPoint:   p.typ.ServeEntryPoint,
		},
		InstanceType:         orDefault(opts.InstanceType, DefaultInstanceType),
		InitialInstanceCount: orDefaultInt32(opts.InitialInstanceCount, DefaultInstanceCount),
	}
	if err := p.svc.CreateEndpoint(ctx, spec); err != nil {
		return err
	}

	ep := endpoint.New(p.svc, name, p.log)
	if p.pollInterval > 0 {
		ep.SetPollInterval(p.pollInterval)
	}
	p.ep = ep
	p.log.Info("endpoint deployment started", zap.String("endpoint", name))

	if opts.Wait {
		status, err := ep.WaitInService(ctx)
		if err != nil {
			return err
		}
		if status != execution.StatusCompleted {
			return fmt.Errorf("predictor: endpoint %s deployment ended with status %s", name, status)
		}
	}
	return nil
}

// AttachEndpoint binds the predictor to an existing endpoint, verifying it
// exists on the service.
func (p *CloudPredictor) AttachEndpoint(ctx context.Context, name string) error {
	if p.ep != nil {
		return fmt.Errorf("%w: %s", ErrEndpointAttached, p.ep.Name())
	}

	ep := endpoint.New(p.svc, name, p.log)
	if p.pollInterval > 0 {
		ep.SetPollInterval(p.pollInterval)
	}
	if _, err := ep.Status(ctx); err != nil {
		return err
	}

	p.ep = ep
	return nil
}

// DetachEndpoint releases the attached endpoint without deleting any remote
// resources, returning its name for later re-attachment.
func (p *CloudPredictor) DetachEndpoint() (string, error) {
	if p.ep == nil {
		return "", ErrNoEndpoint
	}
	name := p.ep.Name()
	p.ep = nil
	return name, nil
}

// EndpointName returns the attached endpoint's name, or empty.
func (p *CloudPredictor) EndpointName() string {
	if p.ep == nil {
		return ""
	}
	return p.ep.Name()
}

// PredictRealTime sends data through the attached endpoint and returns the
// raw response in the requested accept type.
func (p *CloudPredictor) PredictRealTime(ctx context.Context, data stager.Source, accept string) ([]byte, error) {
	if p.ep == nil {
		return nil, ErrNoEndpoint
	}
	if accept == "" {
		accept = DefaultAcceptType
	}
	if !validAcceptTypes[accept] {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAcceptType, accept)
	}

	payload, err := realTimePayload(data)
	if err != nil {
		return nil, err
	}
	if len(payload) > realTimePayloadWarnBytes {
		p.log.Warn("real-time payload exceeds 5MB, consider batch prediction",
			zap.Int("bytes", len(payload)))
	}

	return p.ep.Invoke(ctx, payload, "text/csv", accept)
}

// realTimePayload serializes a local source as CSV bytes.
func realTimePayload(data stager.Source) ([]byte, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	switch {
	case data.Frame != nil:
		var buf bytes.Buffer
		if err := data.Frame.WriteCSV(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case data.LocalPath != "":
		return os.ReadFile(data.LocalPath)
	default:
		return nil, fmt.Errorf("predictor: real-time prediction requires local data")
	}
}

// PredictOptions configures one batch prediction run.
type PredictOptions struct {
	// Data is the batch input source. Required.
	Data stager.Source

	// Format is the staged wire format. Defaults to CSV.
	Format stager.Format

	// Accept is the requested result type. Defaults to text/csv.
	Accept string

	// ModelPath overrides the fit job's artifact.
	ModelPath string

	// Image overrides the predictor's default serving image.
	Image string

	InstanceType  string
	InstanceCount int32

	// JobName overrides the generated transform job name.
	JobName string

	// Wait blocks until the job reaches a terminal status.
	Wait bool
}

// Predict stages data and the trained model, runs a batch transform job, and
// registers it in the transform job registry under its name.
func (p *CloudPredictor) Predict(ctx context.Context, opts PredictOptions) (*job.TransformJob, error) {
	if p.roleARN == "" {
		return nil, fmt.Errorf("predictor: a role ARN is required to predict")
	}
	image := opts.Image
	if image == "" {
		image = p.serveImage
	}
	if image == "" {
		return nil, fmt.Errorf("predictor: a serving image is required to predict")
	}

	format := opts.Format
	if format == "" {
		format = stager.FormatCSV
	}
	accept := opts.Accept
	if accept == "" {
		accept = "text/csv"
	}
	if !validAcceptTypes[accept] {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAcceptType, accept)
	}

	modelPath := opts.ModelPath
	if modelPath == "" {
		artifact, err := p.modelArtifact(ctx)
		if err != nil {
			return nil, err
		}
		modelPath = artifact
	}

	if err := p.store.EnsureBucket(ctx); err != nil {
		return nil, err
	}

	jobName := opts.JobName
	if jobName == "" {
		jobName = p.generateName("batch")
	}

	inputURI, err := p.stage.Stage(ctx, opts.Data, jobName, format)
	if err != nil {
		return nil, err
	}
	modelURI, err := p.stage.StageModel(ctx, modelPath, path.Join(p.cloudPrefix, "model"))
	if err != nil {
		return nil, err
	}

	splitType := "Line"
	if format == stager.FormatParquet {
		splitType = "None"
	}

	spec := execution.TransformJobSpec{
		Name: jobName,
		Model: execution.ModelSpec{
			Name:         jobName,
			Image:        image,
			ModelDataURL: modelURI,
			RoleARN:      p.roleARN,
			EntryPoint:   p.typ.ServeEntryPoint,
		},
		InputURI:      inputURI,
		ContentType:   format.ContentType(),
		SplitType:     splitType,
		Accept:        accept,
		OutputPath:    p.cloudURL("batch_transform", jobName, "results"),
		InstanceType:  orDefault(opts.InstanceType, DefaultInstanceType),
		InstanceCount: orDefaultInt32(opts.InstanceCount, DefaultInstanceCount),
	}

	tj := job.NewTransformJob(p.svc, p.jobOpts())
	if err := tj.Run(ctx, spec, false); err != nil {
		return nil, err
	}
	p.transformJobs.Put(jobName, tj)

	if opts.Wait {
		if err := tj.Wait(ctx); err != nil {
			return tj, err
		}
	}
	return tj, nil
}

// resolveTransformJob returns the named transform job, or the most recent
// one when name is empty.
func (p *CloudPredictor) resolveTransformJob(name string) (*job.TransformJob, error) {
	if name == "" {
		_, tj, ok := p.transformJobs.Last()
		if !ok {
			return nil, fmt.Errorf("%w: no transform jobs have been run", ErrNoSuchJob)
		}
		return tj, nil
	}

	tj, ok := p.transformJobs.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoSuchJob, name)
	}
	return tj, nil
}

// TransformJobStatus polls the named transform job once and returns its
// status. An empty name selects the most recent job.
func (p *CloudPredictor) TransformJobStatus(ctx context.Context, name string) (execution.Status, error) {
	tj, err := p.resolveTransformJob(name)
	if err != nil {
		return execution.StatusNotCreated, err
	}
	if err := tj.Refresh(ctx); err != nil {
		return execution.StatusNotCreated, err
	}
	return tj.Status(), nil
}

// TransformJobNames returns the registered transform job names in insertion
// order.
func (p *CloudPredictor) TransformJobNames() []string {
	return p.transformJobs.Names()
}

// DownloadPredictResults downloads the result objects of the named transform
// job into destDir and returns their local paths. An empty name selects the
// most recent job; an empty destDir uses <local>/results. Existing local
// files are kept and the download is renamed with a unique suffix.
func (p *CloudPredictor) DownloadPredictResults(ctx context.Context, name, destDir string) ([]string, error) {
	tj, err := p.resolveTransformJob(name)
	if err != nil {
		return nil, err
	}
	if err := tj.Refresh(ctx); err != nil {
		return nil, err
	}

	outputPath := tj.OutputPath()
	if outputPath == "" {
		return nil, fmt.Errorf("%w: job %s is %s", ErrNoResults, tj.Name(), tj.Status())
	}

	obj, err := cloudurl.Parse(outputPath)
	if err != nil {
		return nil, err
	}
	if obj.Bucket != p.store.Bucket() {
		return nil, fmt.Errorf("predictor: results %s are outside bucket %s", outputPath, p.store.Bucket())
	}

	if destDir == "" {
		destDir = filepath.Join(p.localPath, "results")
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("predictor: create results dir: %w", err)
	}

	var keys []string
	token := ""
	for {
		page, err := p.store.List(ctx, provider.ListOptions{
			Prefix:            obj.Key,
			ContinuationToken: token,
		})
		if err != nil {
			return nil, err
		}
		for _, o := range page.Objects {
			keys = append(keys, o.Key)
		}
		if !page.IsTruncated || page.ContinuationToken == "" {
			break
		}
		token = page.ContinuationToken
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: nothing under %s", ErrNoResults, outputPath)
	}

	paths := make([]string, 0, len(keys))
	for _, key := range keys {
		local := filepath.Join(destDir, path.Base(key))
		if _, statErr := os.Stat(local); statErr == nil {
			renamed := uniquePath(local)
			p.log.Warn("result file already exists, saving under a new name",
				zap.String("existing", local),
				zap.String("renamed", renamed))
			local = renamed
		}
		if err := p.store.Download(ctx, key, local); err != nil {
			return nil, err
		}
		paths = append(paths, local)
	}
	return paths, nil
}

// uniquePath appends a short unique suffix before the extension.
func uniquePath(p string) string {
	ext := filepath.Ext(p)
	return strings.TrimSuffix(p, ext) + "-" + uuid.NewString()[:8] + ext
}

// CleanupDeployment deletes the attached endpoint and its backing resources.
func (p *CloudPredictor) CleanupDeployment(ctx context.Context) error {
	if p.ep == nil {
		return ErrNoEndpoint
	}
	if err := p.ep.Delete(ctx); err != nil {
		return err
	}
	p.ep = nil
	return nil
}

// Info is a read snapshot of the predictor's state.
type Info struct {
	Type            string         `json:"type"`
	RoleARN         string         `json:"role_arn,omitempty"`
	LocalOutputPath string         `json:"local_output_path"`
	CloudOutputPath string         `json:"cloud_output_path"`
	FitJob          job.Snapshot   `json:"fit_job"`
	TransformJobs   []job.Snapshot `json:"transform_jobs"`
	EndpointName    string         `json:"endpoint_name,omitempty"`
}

// Info returns a snapshot of the predictor's paths, jobs, and endpoint.
func (p *CloudPredictor) Info() Info {
	jobs := make([]job.Snapshot, 0, p.transformJobs.Len())
	for _, name := range p.transformJobs.Names() {
		tj, _ := p.transformJobs.Get(name)
		jobs = append(jobs, tj.Snapshot())
	}
	return Info{
		Type:            p.typ.Name,
		RoleARN:         p.roleARN,
		LocalOutputPath: p.localPath,
		CloudOutputPath: p.cloudURL(),
		FitJob:          p.fitJob.Snapshot(),
		TransformJobs:   jobs,
		EndpointName:    p.EndpointName(),
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func orDefaultInt32(v, def int32) int32 {
	if v <= 0 {
		return def
	}
	return v
}
