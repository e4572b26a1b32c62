package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// NetworkError wraps a transport failure (DNS, refused connection, timeout).
// It is transient: the user can simply search again.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError wraps err as a NetworkError.
func NewNetworkError(err error) *NetworkError {
	return &NetworkError{Err: err}
}

// APIError is a structured error returned by the search service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return "API Error: " + e.Message
	}
	return fmt.Sprintf("API Error: %s (HTTP %d)", e.Message, e.StatusCode)
}

// NewAPIError creates an APIError. An empty message falls back to the HTTP status text.
func NewAPIError(statusCode int, message string) *APIError {
	if message == "" {
		message = http.StatusText(statusCode)
	}
	if message == "" {
		message = "unknown error"
	}
	return &APIError{StatusCode: statusCode, Message: message}
}

// IsNetworkError reports whether err is a NetworkError (even when wrapped).
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// IsAPIError reports whether err is an APIError (even when wrapped).
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// Kind names the error category for notifications and logs.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsConfigError(err):
		return "ConfigError"
	case IsRateLimitError(err):
		return "RateLimitError"
	case IsAPIError(err):
		return "ApiError"
	case IsNetworkError(err):
		return "NetworkError"
	default:
		return "Error"
	}
}
