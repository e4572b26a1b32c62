package search

import (
	"fmt"
	"log/slog"

	bferrors "github.com/lepinkainen/bookfinder/internal/errors"
)

// EventKind identifies a status transition worth telling the user about.
type EventKind int

const (
	EventStarted EventKind = iota
	EventSucceeded
	EventEmpty
	EventFailed
	EventCleared
	EventFavoriteAdded
	EventFavoriteRemoved
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventSucceeded:
		return "succeeded"
	case EventEmpty:
		return "empty"
	case EventFailed:
		return "failed"
	case EventCleared:
		return "cleared"
	case EventFavoriteAdded:
		return "favorite_added"
	case EventFavoriteRemoved:
		return "favorite_removed"
	default:
		return "unknown"
	}
}

// Event is sent to the Notifier on every transition.
type Event struct {
	Kind  EventKind
	Query string
	Count int
	Title string
	Err   error
}

// Message is the short user-facing text for e.
func (e Event) Message() string {
	switch e.Kind {
	case EventStarted:
		return fmt.Sprintf("Searching for %q...", e.Query)
	case EventSucceeded:
		return fmt.Sprintf("Found %d books", e.Count)
	case EventEmpty:
		return "No books found. Try a different search term."
	case EventFailed:
		if e.Err != nil && !bferrors.IsNetworkError(e.Err) {
			return e.Err.Error()
		}
		return "Failed to search books. Please try again."
	case EventCleared:
		return "Search cleared"
	case EventFavoriteAdded:
		return "Book added to favorites"
	case EventFavoriteRemoved:
		return "Book removed from favorites"
	default:
		return ""
	}
}

// Notifier receives search events. Implementations must not block for long;
// they are called from timer and fetch goroutines.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Event)

// Notify calls f(e).
func (f NotifierFunc) Notify(e Event) {
	f(e)
}

// Notifiers fans an event out to every member.
type Notifiers []Notifier

// Notify forwards e to each non-nil notifier in order.
func (ns Notifiers) Notify(e Event) {
	for _, n := range ns {
		if n != nil {
			n.Notify(e)
		}
	}
}

// LogNotifier writes events to slog.
type LogNotifier struct {
	Logger *slog.Logger
}

// Notify logs e. Failures are logged at warn level, everything else at info.
func (n LogNotifier) Notify(e Event) {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}

	attrs := []any{"event", e.Kind.String()}
	if e.Query != "" {
		attrs = append(attrs, "query", e.Query)
	}
	if e.Title != "" {
		attrs = append(attrs, "title", e.Title)
	}

	switch e.Kind {
	case EventFailed:
		logger.Warn("Search failed", append(attrs, "kind", bferrors.Kind(e.Err), "error", e.Err)...)
	case EventSucceeded, EventEmpty:
		logger.Info("Search finished", append(attrs, "count", e.Count)...)
	default:
		logger.Info(e.Message(), attrs...)
	}
}
