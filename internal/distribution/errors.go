package distribution

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is returned when the API rejects the bearer token and
// the one-shot refresh could not recover the session. The caller must tear
// the console session down.
var ErrUnauthenticated = errors.New("authentication required")

// ErrForbidden is returned when the API rejects the caller's role.
var ErrForbidden = errors.New("admin role required")

// APIError is a non-2xx response that is neither an authentication nor an
// authorization failure.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Message)
}
