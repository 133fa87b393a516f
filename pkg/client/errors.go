package client

import (
	"errors"
	"fmt"
)

// APIError represents a non-2xx HTTP response from the API.
// Detail carries the server's human-readable message verbatim.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Detail)
}

// IsStatus returns true if err (or any wrapped error) is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == code
	}
	return false
}

// Detail returns the server-provided message from err, or the empty
// string if err carries no APIError. Callers use it to surface
// user-correctable failures (bad credentials, duplicate email) verbatim.
func Detail(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}
