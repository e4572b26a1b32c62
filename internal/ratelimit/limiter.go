// Package ratelimit throttles outgoing API requests.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter wraps rate.Limiter with a name for logging and a back-off window
// that is opened when the remote API reports it is rate limiting us.
//
// A nil *Limiter never blocks, which lets tests disable throttling.
type Limiter struct {
	limiter *rate.Limiter
	name    string

	mu          sync.Mutex
	pausedUntil time.Time
	now         func() time.Time
}

// New creates a new rate limiter with the given requests per second.
// The burst size equals the rate, allowing short bursts up to the rate limit.
func New(name string, requestsPerSecond int) *Limiter {
	return NewWithBurst(name, requestsPerSecond, requestsPerSecond)
}

// NewWithBurst creates a new rate limiter with custom burst size.
func NewWithBurst(name string, requestsPerSecond, burst int) *Limiter {
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		name:    name,
		now:     time.Now,
	}
}

// Wait blocks until the rate limiter allows a request to proceed.
// Returns an error if the context is cancelled or the limiter is paused.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}
	if remaining := l.Paused(); remaining > 0 {
		return fmt.Errorf("%s requests paused for another %s", l.name, remaining.Round(time.Second))
	}
	if err := l.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait for %s: %w", l.name, err)
	}
	return nil
}

// Pause rejects requests for d. Repeated calls extend but never shorten the window.
func (l *Limiter) Pause(d time.Duration) {
	if l == nil || d <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	until := l.now().Add(d)
	if until.After(l.pausedUntil) {
		l.pausedUntil = until
		slog.Warn("API rate limit reached, pausing requests", "api", l.name, "for", d)
	}
}

// Paused returns how long requests stay rejected, or 0.
func (l *Limiter) Paused() time.Duration {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	remaining := l.pausedUntil.Sub(l.now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Allow reports whether a request can proceed without blocking.
func (l *Limiter) Allow() bool {
	if l == nil {
		return true
	}
	return l.Paused() == 0 && l.limiter.Allow()
}

// Name returns the name of this rate limiter.
func (l *Limiter) Name() string {
	if l == nil {
		return ""
	}
	return l.name
}
