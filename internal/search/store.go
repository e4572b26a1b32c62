package search

import (
	"slices"

	"github.com/lepinkainen/bookfinder/internal/book"
)

// Status is the search state machine position.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// State is a snapshot of the current search.
type State struct {
	Query        string
	Status       Status
	ErrorMessage string
	Err          error
	Results      []book.Book
}

// Store holds the latest accepted search state and its facets.
// It is not safe for concurrent use; Controller serializes access.
type Store struct {
	state  State
	facets Facets
}

// NewStore returns an idle store with no results.
func NewStore() *Store {
	s := &Store{}
	s.Clear("")
	return s
}

// State returns a copy of the current state.
func (s *Store) State() State {
	st := s.state
	st.Results = slices.Clone(s.state.Results)
	return st
}

// Facets returns the facets of the current results.
func (s *Store) Facets() Facets {
	return s.facets
}

// SetQuery records the query as typed without changing status.
func (s *Store) SetQuery(query string) {
	s.state.Query = query
}

// SetLoading moves to loading. Previous results stay visible until replaced.
func (s *Store) SetLoading(query string) {
	s.state.Query = query
	s.state.Status = StatusLoading
	s.state.ErrorMessage = ""
	s.state.Err = nil
}

// SetResults moves to success and recomputes facets.
func (s *Store) SetResults(query string, results []book.Book) {
	if results == nil {
		results = []book.Book{}
	}
	s.state = State{Query: query, Status: StatusSuccess, Results: results}
	s.facets = DeriveFacets(results)
}

// SetError moves to error. The previous results and facets are kept so the
// list stays browsable under the error message.
func (s *Store) SetError(query string, err error) {
	s.state.Query = query
	s.state.Status = StatusError
	s.state.ErrorMessage = err.Error()
	s.state.Err = err
}

// Clear moves to idle with empty results.
func (s *Store) Clear(query string) {
	s.state = State{Query: query, Status: StatusIdle, Results: []book.Book{}}
	s.facets = DeriveFacets(nil)
}

// Filtered returns the current results narrowed by f.
func (s *Store) Filtered(f Filter) []book.Book {
	return f.Apply(s.state.Results)
}
