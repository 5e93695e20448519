// Package endpoint wraps one deployed real-time inference endpoint.
package endpoint

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/3leaps/nimbusml/pkg/execution"
)

// DefaultPollInterval paces deployment status polling.
const DefaultPollInterval = 30 * time.Second

// Endpoint is a handle to a deployed endpoint. The model and endpoint
// configuration created during deployment share the endpoint's name.
type Endpoint struct {
	svc  execution.Service
	name string
	log  *zap.Logger

	pollInterval time.Duration
}

// New binds a handle to an endpoint name. The endpoint may or may not exist
// yet; Status reports the live state.
func New(svc execution.Service, name string, log *zap.Logger) *Endpoint {
	if log == nil {
		log = zap.NewNop()
	}
	return &Endpoint{
		svc:          svc,
		name:         name,
		log:          log,
		pollInterval: DefaultPollInterval,
	}
}

// SetPollInterval overrides the deployment polling pace.
func (e *Endpoint) SetPollInterval(d time.Duration) {
	if d > 0 {
		e.pollInterval = d
	}
}

// Name returns the endpoint name.
func (e *Endpoint) Name() string { return e.name }

// Status returns the live deployment status, folded into the shared job
// status vocabulary (InService reports as Completed).
func (e *Endpoint) Status(ctx context.Context) (execution.Status, error) {
	detail, err := e.svc.DescribeEndpoint(ctx, e.name)
	if err != nil {
		return execution.StatusNotCreated, err
	}
	return detail.Status, nil
}

// WaitInService polls until the deployment reaches a terminal status and
// returns that status. A failed deployment is a status, not an error.
func (e *Endpoint) WaitInService(ctx context.Context) (execution.Status, error) {
	limiter := rate.NewLimiter(rate.Every(e.pollInterval), 1)
	for {
		if err := limiter.Wait(ctx); err != nil {
			return execution.StatusNotCreated, err
		}

		status, err := e.Status(ctx)
		if err != nil {
			return execution.StatusNotCreated, err
		}
		e.log.Debug("endpoint status",
			zap.String("endpoint", e.name),
			zap.String("status", status.String()))

		if status.Terminal() {
			return status, nil
		}
	}
}

// Invoke sends one real-time inference request.
func (e *Endpoint) Invoke(ctx context.Context, body []byte, contentType, accept string) ([]byte, error) {
	return e.svc.InvokeEndpoint(ctx, execution.InvokeRequest{
		EndpointName: e.name,
		Body:         body,
		ContentType:  contentType,
		Accept:       accept,
	})
}

// Delete removes the endpoint, its configuration, and its model. Resources
// already gone are skipped.
func (e *Endpoint) Delete(ctx context.Context) error {
	if err := e.svc.DeleteEndpoint(ctx, e.name); err != nil && !execution.IsEndpointNotFound(err) {
		return err
	}
	if err := e.svc.DeleteEndpointConfig(ctx, e.name); err != nil && !execution.IsEndpointNotFound(err) {
		return err
	}
	if err := e.svc.DeleteModel(ctx, e.name); err != nil && !execution.IsJobNotFound(err) && !execution.IsEndpointNotFound(err) {
		return err
	}

	e.log.Info("endpoint deleted", zap.String("endpoint", e.name))
	return nil
}
