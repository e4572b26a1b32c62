// Package googlebooks provides a client for the Google Books volumes search API.
package googlebooks

import (
	"net/http"
	"strings"
	"time"

	"github.com/lepinkainen/bookfinder/internal/ratelimit"
)

const (
	// DefaultEndpoint is the volumes search endpoint.
	DefaultEndpoint       = "https://www.googleapis.com/books/v1/volumes"
	defaultMaxAttempts    = 2
	defaultRatePerSecond  = 5
	defaultTimeout        = 10 * time.Second
	defaultRetryBaseDelay = 500 * time.Millisecond
	defaultRateLimitPause = time.Minute
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a Google Books API client.
type Client struct {
	apiKey         string
	endpoint       string
	httpClient     HTTPDoer
	rateLimiter    *ratelimit.Limiter
	retryAttempts  int
	retryBaseDelay time.Duration
	maxResults     int
}

// NewClient creates a new Google Books API client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:         apiKey,
		endpoint:       DefaultEndpoint,
		httpClient:     &http.Client{Timeout: defaultTimeout},
		rateLimiter:    ratelimit.New("GoogleBooks", defaultRatePerSecond),
		retryAttempts:  defaultMaxAttempts,
		retryBaseDelay: defaultRetryBaseDelay,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// HasAPIKey reports whether a key is configured.
func (c *Client) HasAPIKey() bool {
	return strings.TrimSpace(c.apiKey) != ""
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithEndpoint sets a custom volumes search endpoint.
func WithEndpoint(endpoint string) Option {
	return func(client *Client) {
		if endpoint != "" {
			client.endpoint = strings.TrimSuffix(endpoint, "/")
		}
	}
}

// WithRetryAttempts sets the number of attempts for requests failing with transient network errors.
func WithRetryAttempts(attempts int) Option {
	return func(client *Client) {
		if attempts > 0 {
			client.retryAttempts = attempts
		}
	}
}

// WithRetryBaseDelay sets the first backoff delay; later attempts double it.
func WithRetryBaseDelay(d time.Duration) Option {
	return func(client *Client) {
		if d > 0 {
			client.retryBaseDelay = d
		}
	}
}

// WithRateLimiter sets a custom rate limiter. nil disables throttling.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		client.rateLimiter = limiter
	}
}

// WithMaxResults asks the API for up to n items (the API caps this at 40).
// Zero leaves the API default of 10.
func WithMaxResults(n int) Option {
	return func(client *Client) {
		if n > 0 {
			client.maxResults = min(n, 40)
		}
	}
}
