package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel failure classes. Callers branch with errors.Is; NotFound on a menu
// lookup is a valid empty state, not a user-visible error.
var (
	ErrNetwork    = errors.New("network failure")
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failure")
	ErrServer     = errors.New("server fault")
)

// RequestError carries the operation and HTTP status of a failed request,
// wrapping one of the sentinel classes above.
type RequestError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// classifyStatus maps a non-2xx HTTP status to a sentinel failure class.
func classifyStatus(code int) error {
	switch {
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 400 && code < 500:
		return ErrValidation
	default:
		return ErrServer
	}
}

// IsNotFound reports whether err is the not-found class.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRetryable reports whether the failure is transient: the catalog retries
// these on the next scroll trigger without advancing the page pointer.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrNetwork) || errors.Is(err, ErrServer)
}
