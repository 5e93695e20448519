package predictor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/3leaps/nimbusml/pkg/endpoint"
	"github.com/3leaps/nimbusml/pkg/execution"
	"github.com/3leaps/nimbusml/pkg/job"
	"github.com/3leaps/nimbusml/pkg/provider"
)

// snapshotVersion is bumped on incompatible snapshot schema changes.
const snapshotVersion = 1

// snapshot is the persisted predictor state. Live session references (the
// storage provider and the execution service) are never persisted; Load
// binds fresh ones.
type snapshot struct {
	Version         int            `json:"version"`
	Type            string         `json:"type"`
	RoleARN         string         `json:"role_arn,omitempty"`
	LocalOutputPath string         `json:"local_output_path"`
	CloudOutputPath string         `json:"cloud_output_path"`
	FitJob          job.Snapshot   `json:"fit_job"`
	TransformJobs   []job.Snapshot `json:"transform_jobs,omitempty"`
	EndpointName    string         `json:"endpoint_name,omitempty"`
	SavedAt         time.Time      `json:"saved_at"`
}

// Save writes the predictor state to <local>/<type>.json and returns the
// path. The write is atomic: a temp file in the same directory is renamed
// over the target.
func (p *CloudPredictor) Save() (string, error) {
	jobs := make([]job.Snapshot, 0, p.transformJobs.Len())
	for _, name := range p.transformJobs.Names() {
		tj, _ := p.transformJobs.Get(name)
		jobs = append(jobs, tj.Snapshot())
	}

	snap := snapshot{
		Version:         snapshotVersion,
		Type:            p.typ.Name,
		RoleARN:         p.roleARN,
		LocalOutputPath: p.localPath,
		CloudOutputPath: p.cloudURL(),
		FitJob:          p.fitJob.Snapshot(),
		TransformJobs:   jobs,
		EndpointName:    p.EndpointName(),
		SavedAt:         time.Now().UTC(),
	}

	data, err := json.MarshalIndent(&snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("predictor: marshal snapshot: %w", err)
	}

	target := filepath.Join(p.localPath, p.typ.Name+".json")
	tmp, err := os.CreateTemp(p.localPath, "."+p.typ.Name+"-*.json")
	if err != nil {
		return "", fmt.Errorf("predictor: create snapshot temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("predictor: write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("predictor: close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("predictor: rename snapshot: %w", err)
	}

	p.log.Info("predictor saved", zap.String("path", target))
	return target, nil
}

// LoadOptions supplies the live sessions a restored predictor binds to.
type LoadOptions struct {
	// Store stages artifacts. Required.
	Store provider.Provider

	// Service runs the remote jobs and endpoints. Required.
	Service execution.Service

	// Type overrides the stock type resolved from the snapshot. Needed when
	// the predictor was built with a custom TypeSpec.
	Type *TypeSpec

	// TrainImage and ServeImage restore the default container images.
	TrainImage string
	ServeImage string

	// Logger defaults to a no-op logger.
	Logger *zap.Logger

	// PollInterval paces job and deployment status polling.
	PollInterval time.Duration
}

// Load restores a predictor from a snapshot file. Jobs are rebuilt from
// their persisted state; the endpoint is re-attached by name, never
// re-deployed.
func Load(path string, opts LoadOptions) (*CloudPredictor, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("predictor: a storage provider is required")
	}
	if opts.Service == nil {
		return nil, fmt.Errorf("predictor: an execution service is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("predictor: read snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("predictor: parse snapshot %s: %w", path, err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("predictor: unsupported snapshot version %d in %s", snap.Version, path)
	}

	typ := TypeSpec{}
	if opts.Type != nil {
		typ = *opts.Type
	} else {
		typ, err = TypeByName(snap.Type)
		if err != nil {
			return nil, err
		}
	}

	p, err := newPredictor(Options{
		Type:            typ,
		RoleARN:         snap.RoleARN,
		LocalOutputPath: snap.LocalOutputPath,
		CloudOutputPath: snap.CloudOutputPath,
		Store:           opts.Store,
		Service:         opts.Service,
		TrainImage:      opts.TrainImage,
		ServeImage:      opts.ServeImage,
		Logger:          opts.Logger,
		PollInterval:    opts.PollInterval,
	}, false)
	if err != nil {
		return nil, err
	}

	p.fitJob = job.FitJobFromSnapshot(opts.Service, snap.FitJob, p.jobOpts())
	for _, js := range snap.TransformJobs {
		p.transformJobs.Put(js.Name, job.TransformJobFromSnapshot(opts.Service, js, p.jobOpts()))
	}
	if snap.EndpointName != "" {
		ep := endpoint.New(opts.Service, snap.EndpointName, p.log)
		if p.pollInterval > 0 {
			ep.SetPollInterval(p.pollInterval)
		}
		p.ep = ep
	}

	return p, nil
}
