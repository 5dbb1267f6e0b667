package errors

import (
	stderrors "errors"
	"fmt"
)

// Stage names used as OperationError.Op for the setup phase of a run
const (
	OpCredentials = "credentials"
	OpCatalog     = "catalog"
	OpConfirm     = "confirm"
	OpDestination = "destination"
	OpClone       = "clone"
)

var (
	// ErrCancelled signals that the operator declined a confirmation.
	// It is not a failure: the run stops and the process exits with status 0.
	ErrCancelled = stderrors.New("cancelled by user")

	// ErrCredentialUnavailable indicates no token could be obtained and
	// interactive input is not possible
	ErrCredentialUnavailable = stderrors.New("credential unavailable")
)

// OperationError represents an error that occurred during a stage of the run
type OperationError struct {
	Op  string // The stage being performed
	Err error  // The underlying error
}

// Error implements the error interface
func (e *OperationError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *OperationError) Unwrap() error {
	return e.Err
}

// New creates a new OperationError
func New(op string, err error) *OperationError {
	return &OperationError{
		Op:  op,
		Err: err,
	}
}

// Is implements error matching for OperationError
func (e *OperationError) Is(target error) bool {
	t, ok := target.(*OperationError)
	if !ok {
		return false
	}
	return e.Op == t.Op
}

// Stage reports the Op of the outermost OperationError in err's chain, or ""
func Stage(err error) string {
	var opErr *OperationError
	if stderrors.As(err, &opErr) {
		return opErr.Op
	}
	return ""
}

// IsCancelled reports whether err is, or wraps, ErrCancelled
func IsCancelled(err error) bool {
	return stderrors.Is(err, ErrCancelled)
}
