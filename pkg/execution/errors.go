package execution

import (
	"errors"
	"fmt"
)

// Sentinel errors for execution service operations.
var (
	// ErrJobNotFound indicates the service has no job with the given name.
	ErrJobNotFound = errors.New("job not found")

	// ErrEndpointNotFound indicates the service has no endpoint with the
	// given name.
	ErrEndpointNotFound = errors.New("endpoint not found")

	// ErrThrottled indicates the request was rate limited by the service.
	ErrThrottled = errors.New("request throttled")
)

// ServiceError wraps execution service errors with context.
type ServiceError struct {
	// Op is the operation that failed (e.g., "SubmitTrainingJob").
	Op string

	// Name is the job or endpoint name, if applicable.
	Name string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("execution %s: %s: %v", e.Op, e.Name, e.Err)
	}
	return fmt.Sprintf("execution %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// IsJobNotFound returns true if the error indicates a missing job.
func IsJobNotFound(err error) bool {
	return errors.Is(err, ErrJobNotFound)
}

// IsEndpointNotFound returns true if the error indicates a missing endpoint.
func IsEndpointNotFound(err error) bool {
	return errors.Is(err, ErrEndpointNotFound)
}
