package jobmatch_errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrAuthRequired     = errors.New("authentication required")
	ErrTokenExpired     = errors.New("token expired")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrNotAdmin         = errors.New("admin role required")
	ErrAlreadyResponded = errors.New("already responded")
	ErrPollClosed       = errors.New("poll is closed")
	ErrInvalidInput     = errors.New("invalid input")
	ErrSessionInvalid   = errors.New("2fa session invalid")
)

// APIError is the tagged failure result for a backend call: the
// best-effort decoded message, the HTTP status, and the raw body for
// callers that need more than the message.
type APIError struct {
	Message string
	Status  int
	Payload []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// AsAPIError unwraps err into an *APIError if one is in the chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
