package search

import (
	"context"
	"sync"

	"github.com/lepinkainen/bookfinder/internal/book"
	"github.com/lepinkainen/bookfinder/internal/googlebooks"
)

// fakeSearcher answers from canned responses. A query with a gate blocks
// until the gate is closed, which lets tests resolve requests out of order.
type fakeSearcher struct {
	mu        sync.Mutex
	noKey     bool
	calls     []string
	gates     map[string]chan struct{}
	responses map[string][]googlebooks.Volume
	errs      map[string]error
}

func newFakeSearcher() *fakeSearcher {
	return &fakeSearcher{
		gates:     map[string]chan struct{}{},
		responses: map[string][]googlebooks.Volume{},
		errs:      map[string]error{},
	}
}

func (s *fakeSearcher) HasAPIKey() bool {
	return !s.noKey
}

func (s *fakeSearcher) Search(ctx context.Context, query string) ([]googlebooks.Volume, error) {
	s.mu.Lock()
	s.calls = append(s.calls, query)
	gate := s.gates[query]
	s.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.responses[query], s.errs[query]
}

func (s *fakeSearcher) gate(query string) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan struct{})
	s.gates[query] = ch
	return ch
}

func (s *fakeSearcher) respond(query string, titles ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	volumes := make([]googlebooks.Volume, 0, len(titles))
	for _, title := range titles {
		volumes = append(volumes, googlebooks.Volume{ID: title, VolumeInfo: googlebooks.VolumeInfo{Title: title}})
	}
	s.responses[query] = volumes
}

func (s *fakeSearcher) fail(query string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.errs[query] = err
}

func (s *fakeSearcher) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.calls...)
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingNotifier) Notify(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, e)
}

func (r *recordingNotifier) Kinds() []EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()

	kinds := make([]EventKind, 0, len(r.events))
	for _, e := range r.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

func titles(books []book.Book) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.Title)
	}
	return out
}

func makeBooks(n int) []book.Book {
	books := make([]book.Book, n)
	for i := range books {
		books[i] = book.Book{ID: string(rune('a' + i)), Title: string(rune('A' + i))}
	}
	return books
}
