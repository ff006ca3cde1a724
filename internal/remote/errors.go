// errors.go defines sentinel error values and the APIError wrapper shared by
// all remote client implementations.
package remote

import "errors"

var (
	// Credential errors
	ErrCredentialsRequired = errors.New("remote API credentials are required")
	ErrCredentialsInvalid  = errors.New("remote API rejected the credentials")

	// Record errors
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrRoleNotFound      = errors.New("role not found")
	ErrUserNotFound      = errors.New("user not found")
)

// APIError represents an error response from the remote API.
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// WrapAPIError wraps a remote failure with its HTTP status code. A zero
// status means the request never produced a response.
func WrapAPIError(status int, message string, err error) *APIError {
	return &APIError{StatusCode: status, Message: message, Err: err}
}
