package blueprint

import (
	"errors"
	"fmt"
)

// Sentinel errors for the closed taxonomy adapters translate remote
// failures into. Everything above the adapter layer matches on these,
// never on backend wire formats.
var (
	// ErrMFARequired means the backend wants a one-time code for this
	// login. It is a prompt, not a failure.
	ErrMFARequired = errors.New("one-time code required")

	// ErrNotImplemented means the operation is unsupported by this
	// backend family. The UI should hide the affordance instead of
	// retrying.
	ErrNotImplemented = errors.New("operation not supported by this backend")
)

// NotFoundError is returned when resolution of an apId, person, post or
// community fails. Not retried.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// NewNotFoundError creates a not found error for a resource.
func NewNotFoundError(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// NetworkError wraps a transport-level failure. Retryable.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsNetworkError checks if an error is a transport-level failure.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// ValidationError carries a backend-rejected input verbatim (e.g. a
// duplicate username) for display in the originating form.
type ValidationError struct {
	// Message is the server-provided error text.
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("rejected by server: %s", e.Message)
}

// IsValidationError checks if an error is a backend input rejection.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
