package domain

import "errors"

var (
	// ErrNetworkFailure covers transport errors and response bodies that are
	// not valid JSON.
	ErrNetworkFailure = errors.New("network failure")
	// ErrApplicationFailure means the upstream parsed the request but
	// answered with success=false.
	ErrApplicationFailure = errors.New("operation rejected")

	ErrMissingFields        = errors.New("missing required fields")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrDuplicateRequest     = errors.New("request already in progress")
	ErrCrisisNotFound       = errors.New("crisis message not found")
)

// ActionError attaches the admin-facing alert text to a failed mutation.
type ActionError struct {
	Alert string
	Err   error
}

func (e *ActionError) Error() string { return e.Alert + ": " + e.Err.Error() }

func (e *ActionError) Unwrap() error { return e.Err }
