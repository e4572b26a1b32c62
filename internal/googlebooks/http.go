package googlebooks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	bferrors "github.com/lepinkainen/bookfinder/internal/errors"
)

const maxErrorBody = 64 << 10

func (c *Client) getJSON(ctx context.Context, endpoint string, target *SearchResponse) error {
	var lastErr error
	for attempt := 1; attempt <= c.retryAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			if remaining := c.rateLimiter.Paused(); remaining > 0 {
				return bferrors.NewRateLimitErrorWithRetry("Google Books rate limit reached", remaining.Round(time.Second))
			}
			return bferrors.NewNetworkError(err)
		}

		err := c.doJSONRequest(ctx, endpoint, target)
		if err == nil {
			return nil
		}
		lastErr = err
		if !isRetryable(err) || attempt == c.retryAttempts {
			return err
		}

		select {
		case <-ctx.Done():
			return lastErr
		case <-time.After(c.backoffDelay(attempt)):
		}
	}
	return lastErr
}

func (c *Client) doJSONRequest(ctx context.Context, endpoint string, target *SearchResponse) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return bferrors.NewConfigError("googlebooks.endpoint", fmt.Sprintf("invalid Google Books endpoint: %v", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return bferrors.NewNetworkError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		pause := retryAfter
		if pause <= 0 {
			pause = defaultRateLimitPause
		}
		c.rateLimiter.Pause(pause)
		return bferrors.NewRateLimitErrorWithRetry(errorMessage(resp.Body, "Google Books rate limit reached"), retryAfter)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return bferrors.NewAPIError(resp.StatusCode, errorMessage(resp.Body, ""))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
			return bferrors.NewAPIError(0, fmt.Sprintf("malformed response: %v", err))
		}
		return bferrors.NewNetworkError(fmt.Errorf("reading response: %w", err))
	}

	if target.Error != nil {
		return bferrors.NewAPIError(target.Error.Code, target.Error.Message)
	}

	return nil
}

// errorMessage extracts error.message from a Google API error body,
// falling back to the raw (trimmed) body text and then to fallback.
func errorMessage(body io.Reader, fallback string) string {
	raw, _ := io.ReadAll(io.LimitReader(body, maxErrorBody))

	var payload struct {
		Error *ErrorBody `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != nil && payload.Error.Message != "" {
		return payload.Error.Message
	}

	if text := strings.TrimSpace(string(raw)); text != "" && !strings.HasPrefix(text, "{") && len(text) < 200 {
		return text
	}
	return fallback
}

func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}

func isRetryable(err error) bool {
	if !bferrors.IsNetworkError(err) {
		return false
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true
		}
		// Network errors (connection resets etc.)
		if strings.Contains(urlErr.Error(), "connection") {
			return true
		}
	}
	return false
}

func (c *Client) backoffDelay(attempt int) time.Duration {
	// exponential backoff capped at 5 seconds
	delay := c.retryBaseDelay * time.Duration(1<<uint(attempt-1))
	if delay > 5*time.Second {
		return 5 * time.Second
	}
	return delay
}
