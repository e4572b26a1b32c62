package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilLimiterNeverBlocks(t *testing.T) {
	var l *Limiter

	require.NoError(t, l.Wait(context.Background()))
	assert.True(t, l.Allow())
	assert.Zero(t, l.Paused())
	l.Pause(time.Minute)
	assert.Equal(t, "", l.Name())
}

func TestWaitHonoursCancelledContext(t *testing.T) {
	l := NewWithBurst("test", 1, 1)
	require.True(t, l.Allow()) // drain the single token

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := l.Wait(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit wait for test")
}

func TestPauseRejectsUntilExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l := New("GoogleBooks", 10)
	l.now = func() time.Time { return now }

	l.Pause(30 * time.Second)
	assert.Equal(t, 30*time.Second, l.Paused())
	assert.False(t, l.Allow())

	err := l.Wait(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GoogleBooks requests paused")

	// a shorter pause does not shrink the window
	l.Pause(5 * time.Second)
	assert.Equal(t, 30*time.Second, l.Paused())

	now = now.Add(31 * time.Second)
	assert.Zero(t, l.Paused())
	require.NoError(t, l.Wait(context.Background()))
}
