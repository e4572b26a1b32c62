package search

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	bferrors "github.com/lepinkainen/bookfinder/internal/errors"
)

func TestEventMessage(t *testing.T) {
	tests := []struct {
		event    Event
		expected string
	}{
		{Event{Kind: EventStarted, Query: "dune"}, `Searching for "dune"...`},
		{Event{Kind: EventSucceeded, Count: 2}, "Found 2 books"},
		{Event{Kind: EventEmpty}, "No books found. Try a different search term."},
		{Event{Kind: EventFailed, Err: bferrors.NewNetworkError(errors.New("refused"))}, "Failed to search books. Please try again."},
		{Event{Kind: EventFailed, Err: bferrors.NewAPIError(400, "Invalid value")}, "API Error: Invalid value (HTTP 400)"},
		{Event{Kind: EventFailed, Err: bferrors.ErrMissingAPIKey}, bferrors.ErrMissingAPIKey.Error()},
		{Event{Kind: EventCleared}, "Search cleared"},
		{Event{Kind: EventFavoriteAdded}, "Book added to favorites"},
		{Event{Kind: EventFavoriteRemoved}, "Book removed from favorites"},
	}

	for _, tt := range tests {
		t.Run(tt.event.Kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.event.Message())
		})
	}
}

func TestNotifiersFanOut(t *testing.T) {
	var got []string
	a := NotifierFunc(func(e Event) { got = append(got, "a:"+e.Kind.String()) })
	b := NotifierFunc(func(e Event) { got = append(got, "b:"+e.Kind.String()) })

	Notifiers{a, nil, b}.Notify(Event{Kind: EventCleared})

	assert.Equal(t, []string{"a:cleared", "b:cleared"}, got)
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	n := LogNotifier{Logger: logger}

	n.Notify(Event{Kind: EventSucceeded, Query: "dune", Count: 2})
	n.Notify(Event{Kind: EventFailed, Query: "dune", Err: bferrors.NewAPIError(500, "boom")})

	out := buf.String()
	assert.Contains(t, out, "Search finished")
	assert.Contains(t, out, "count=2")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "kind=ApiError")
}
