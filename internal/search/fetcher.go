package search

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/lepinkainen/bookfinder/internal/book"
	bferrors "github.com/lepinkainen/bookfinder/internal/errors"
	"github.com/lepinkainen/bookfinder/internal/googlebooks"
)

// Searcher is the transport the fetcher talks to. Both googlebooks.Client
// and googlebooks.CachedClient satisfy it.
type Searcher interface {
	Search(ctx context.Context, query string) ([]googlebooks.Volume, error)
	HasAPIKey() bool
}

// Outcome is the result of one fetch attempt.
type Outcome struct {
	Seq     uint64
	Query   string
	Results []book.Book
	Err     error
}

// Fetcher performs sequence-numbered searches. Callers take a number with
// Next before dispatching and apply the outcome only if Current still holds.
type Fetcher struct {
	searcher Searcher
	seq      atomic.Uint64
}

// NewFetcher creates a Fetcher backed by searcher.
func NewFetcher(searcher Searcher) *Fetcher {
	return &Fetcher{searcher: searcher}
}

// Next allocates the next sequence number.
func (f *Fetcher) Next() uint64 {
	return f.seq.Add(1)
}

// Current reports whether seq is the highest number dispatched so far.
func (f *Fetcher) Current(seq uint64) bool {
	return f.seq.Load() == seq
}

// Ready reports whether an API key is configured.
func (f *Fetcher) Ready() bool {
	return f.searcher != nil && f.searcher.HasAPIKey()
}

// Search runs one search for query tagged with seq. It never returns a
// raw error: every failure is classified into Outcome.Err.
func (f *Fetcher) Search(ctx context.Context, query string, seq uint64) Outcome {
	out := Outcome{Seq: seq, Query: query, Results: []book.Book{}}

	query = strings.TrimSpace(query)
	if query == "" {
		return out
	}
	if !f.Ready() {
		out.Err = bferrors.ErrMissingAPIKey
		return out
	}

	volumes, err := f.searcher.Search(ctx, query)
	if err != nil {
		out.Err = classify(err)
		return out
	}

	out.Results = book.FromVolumes(volumes)
	return out
}

// classify keeps typed errors and treats anything else as a transport failure.
func classify(err error) error {
	if bferrors.Kind(err) != "Error" {
		return err
	}
	return bferrors.NewNetworkError(err)
}
