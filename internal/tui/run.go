package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lepinkainen/bookfinder/internal/book"
	"github.com/lepinkainen/bookfinder/internal/search"
)

const eventBuffer = 64

type program interface {
	Run() (tea.Model, error)
	Send(msg tea.Msg)
}

var newProgram = func(m tea.Model) program {
	return tea.NewProgram(m, tea.WithAltScreen())
}

// Options configure an interactive session.
type Options struct {
	Searcher search.Searcher
	// Ping verifies the API connection at startup. Nil skips the check.
	Ping     func(context.Context) error
	Query    string
	Debounce time.Duration
	Clock    clock.Clock
	// Notifier receives every event in addition to the UI, e.g. a LogNotifier.
	Notifier search.Notifier
}

// Run shows the search UI until the user quits and returns the favorites
// collected during the session.
func Run(ctx context.Context, opts Options) ([]book.Book, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ui := newProgramNotifier(eventBuffer)
	notifiers := search.Notifiers{ui}
	if opts.Notifier != nil {
		notifiers = append(notifiers, opts.Notifier)
	}

	ctrl := search.NewController(ctx, opts.Searcher, search.Options{
		Clock:    opts.Clock,
		Debounce: opts.Debounce,
		Notifier: notifiers,
	})
	defer ctrl.Teardown()

	m := newSearchModel(ctx, ctrl, opts.Ping)
	if opts.Query != "" {
		m.input.SetValue(opts.Query)
		m.input.CursorEnd()
		ctrl.QueryChanged(opts.Query)
		ctrl.Submit()
	}

	p := newProgram(m)
	go ui.forward(ctx, p)

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("search UI failed: %w", err)
	}

	if typed, ok := finalModel.(*searchModel); ok {
		return typed.ctrl.Favorites(), nil
	}

	return nil, fmt.Errorf("unexpected program result")
}
