package api

import (
	"errors"
	"fmt"
)

// Failure taxonomy for repository operations. Call sites match with
// errors.Is and turn these into short operator-facing messages; none
// of them is fatal to the process.
var (
	// ErrValidation: the server rejected the input, e.g. a plate that
	// is not a registered vehicle.
	ErrValidation = errors.New("rejected by server")
	// ErrNotFound: the target session or vehicle does not exist (or a
	// session is already closed; the server does not distinguish).
	ErrNotFound = errors.New("not found")
	// ErrNetwork: transport or connectivity failure. No automatic
	// retries; the operator retries manually.
	ErrNetwork = errors.New("network failure")
	// ErrAuth: the bearer credential is invalid or expired. The held
	// credential must be invalidated when this surfaces.
	ErrAuth = errors.New("invalid or expired credential")
)

// StatusError is an unexpected HTTP status from the remote API. It
// unwraps to the taxonomy sentinel matching its status code.
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Body)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
}

// Describe turns a failure into the short message operators see.
// Nothing in the taxonomy is fatal; they retry manually.
func Describe(err error) string {
	switch {
	case errors.Is(err, ErrAuth):
		return "Session expired or not logged in. Run 'vaga login'."
	case errors.Is(err, ErrNotFound):
		return "Not found - it may already be closed or deleted."
	case errors.Is(err, ErrValidation):
		return "Rejected by the server. Check the plate is a registered vehicle."
	case errors.Is(err, ErrNetwork):
		return "Network error. Check the connection and try again."
	default:
		return err.Error()
	}
}

func (e *StatusError) Unwrap() error {
	switch {
	case e.Status == 401 || e.Status == 403:
		return ErrAuth
	case e.Status == 404:
		return ErrNotFound
	case e.Status >= 400 && e.Status < 500:
		return ErrValidation
	default:
		return ErrNetwork
	}
}
