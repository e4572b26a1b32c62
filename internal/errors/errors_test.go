package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
	"time"
)

func TestRateLimitError(t *testing.T) {
	err := NewRateLimitError("slow down")

	if err.Error() != "slow down" {
		t.Fatalf("Error message = %q, want %q", err.Error(), "slow down")
	}

	if !IsRateLimitError(err) {
		t.Fatalf("IsRateLimitError returned false for RateLimitError")
	}

	wrapped := stdErrors.Join(err)
	if !IsRateLimitError(wrapped) {
		t.Fatalf("IsRateLimitError returned false for wrapped RateLimitError")
	}
}

func TestRateLimitErrorWithRetry(t *testing.T) {
	err := NewRateLimitErrorWithRetry("too many requests", 2*time.Minute)

	expected := "too many requests (retry after 2m0s)"
	if err.Error() != expected {
		t.Fatalf("Error message = %q, want %q", err.Error(), expected)
	}

	if err.RetryAfter.Minutes() != 2.0 {
		t.Fatalf("RetryAfter = %v, want 2 minutes", err.RetryAfter)
	}
}

func TestRateLimitErrorWithRetry_ZeroDuration(t *testing.T) {
	err := NewRateLimitErrorWithRetry("rate limited", 0)

	if err.Error() != "rate limited" {
		t.Fatalf("Error message = %q, want %q", err.Error(), "rate limited")
	}
}

func TestConfigError(t *testing.T) {
	err := NewConfigError("googlebooks.apikey", "key missing")

	if err.Error() != "key missing" {
		t.Fatalf("Error message = %q, want %q", err.Error(), "key missing")
	}
	if !IsConfigError(fmt.Errorf("search: %w", err)) {
		t.Fatalf("IsConfigError returned false for wrapped ConfigError")
	}
	if !IsConfigError(ErrMissingAPIKey) {
		t.Fatalf("ErrMissingAPIKey is not a ConfigError")
	}
}

func TestNetworkErrorUnwraps(t *testing.T) {
	cause := stdErrors.New("connection refused")
	err := NewNetworkError(cause)

	if !stdErrors.Is(err, cause) {
		t.Fatalf("NetworkError does not unwrap to its cause")
	}
	if err.Error() != "network error: connection refused" {
		t.Fatalf("Error message = %q", err.Error())
	}
}

func TestAPIErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		message  string
		expected string
	}{
		{
			name:     "service message",
			status:   400,
			message:  "API key not valid. Please pass a valid API key.",
			expected: "API Error: API key not valid. Please pass a valid API key. (HTTP 400)",
		},
		{
			name:     "falls back to status text",
			status:   503,
			expected: "API Error: Service Unavailable (HTTP 503)",
		},
		{
			name:     "no status",
			message:  "bad payload",
			expected: "API Error: bad payload",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewAPIError(tt.status, tt.message)
			if err.Error() != tt.expected {
				t.Fatalf("Error message = %q, want %q", err.Error(), tt.expected)
			}
		})
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{nil, ""},
		{ErrMissingAPIKey, "ConfigError"},
		{NewNetworkError(stdErrors.New("eof")), "NetworkError"},
		{fmt.Errorf("wrapped: %w", NewAPIError(403, "forbidden")), "ApiError"},
		{NewRateLimitError("slow"), "RateLimitError"},
		{stdErrors.New("other"), "Error"},
	}

	for _, tt := range tests {
		if got := Kind(tt.err); got != tt.expected {
			t.Fatalf("Kind(%v) = %q, want %q", tt.err, got, tt.expected)
		}
	}
}
