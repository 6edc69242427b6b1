package livingapps

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is returned when the record store answers with a
// non-success HTTP status. Body carries the response text verbatim.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf(
		"unexpected status %d on %s %s: %s",
		e.StatusCode, e.Method, e.Path, e.Body,
	)
}

// AuthError indicates that the session cookie was rejected (401/403).
type AuthError struct {
	Status *StatusError
}

func (e *AuthError) Error() string {
	return fmt.Sprintf(
		"authentication failed (%d): run 'habits login' to store a fresh session",
		e.Status.StatusCode,
	)
}

// Unwrap exposes the underlying StatusError.
func (e *AuthError) Unwrap() error { return e.Status }

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// IsNotFound reports whether err is a 404 from the record store.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}
