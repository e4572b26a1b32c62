package tui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lepinkainen/bookfinder/internal/search"
)

// eventMsg carries a search event into the bubbletea loop.
type eventMsg struct {
	search.Event
}

// sender is the part of *tea.Program the notifier needs.
type sender interface {
	Send(msg tea.Msg)
}

// programNotifier queues events and forwards them to the program from one
// goroutine, so Notify never blocks the controller and order is kept.
type programNotifier struct {
	events chan search.Event
}

func newProgramNotifier(buffer int) *programNotifier {
	return &programNotifier{events: make(chan search.Event, buffer)}
}

func (n *programNotifier) Notify(e search.Event) {
	select {
	case n.events <- e:
	default:
		slog.Debug("Dropping UI event, queue full", "event", e.Kind.String())
	}
}

// forward delivers queued events to p until ctx is done.
func (n *programNotifier) forward(ctx context.Context, p sender) {
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-n.events:
			p.Send(eventMsg{Event: e})
		}
	}
}
