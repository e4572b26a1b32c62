package search

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/lepinkainen/bookfinder/internal/book"
)

// Options tune a Controller. The zero value is usable.
type Options struct {
	Clock    clock.Clock
	Debounce time.Duration
	Notifier Notifier
}

// View is everything a presentation layer needs to draw the search screen.
type View struct {
	Input  string
	State  State
	Facets Facets
	Filter Filter
	Page   Page
	// Matches is the number of results left after filtering.
	Matches   int
	Favorites int
	Ready     bool
}

// Controller owns one search session: the input query, the state machine,
// the active filter and page, and the favorites set.
//
// Timer callbacks and fetch completions arrive on their own goroutines and
// are serialized by mu. A fetch result is applied only when its sequence
// number is still the latest one dispatched.
type Controller struct {
	mu        sync.Mutex
	ctx       context.Context
	cancel    context.CancelFunc
	fetcher   *Fetcher
	debouncer *Debouncer
	store     *Store
	favorites *Favorites
	notifier  Notifier

	query  string
	filter Filter
	page   int
	closed bool

	inflight sync.WaitGroup
}

// NewController creates an idle controller searching through searcher.
// Cancelling ctx has the same effect on in-flight requests as Teardown.
func NewController(ctx context.Context, searcher Searcher, opts Options) *Controller {
	ctx, cancel := context.WithCancel(ctx)

	c := &Controller{
		ctx:       ctx,
		cancel:    cancel,
		fetcher:   NewFetcher(searcher),
		store:     NewStore(),
		favorites: NewFavorites(),
		notifier:  opts.Notifier,
		page:      1,
	}
	c.debouncer = NewDebouncer(opts.Clock, opts.Debounce, func(string) { c.trigger() })
	return c
}

// QueryChanged records the query as typed. A blank query clears results at
// once; anything else is searched after the debounce quiet period.
func (c *Controller) QueryChanged(query string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.query = query
	c.store.SetQuery(query)

	if strings.TrimSpace(query) != "" {
		c.mu.Unlock()
		c.debouncer.Change(query)
		return
	}

	event, cleared := c.clearLocked()
	c.mu.Unlock()

	c.debouncer.Reset(query)
	if cleared {
		c.notify(event)
	}
}

// Submit searches the current query immediately, skipping the quiet period.
func (c *Controller) Submit() {
	c.debouncer.Submit()
}

// Teardown cancels the pending timer and in-flight requests. Later
// responses are dropped and further input is ignored.
func (c *Controller) Teardown() {
	c.mu.Lock()
	c.closed = true
	c.fetcher.Next()
	c.mu.Unlock()

	c.debouncer.Cancel()
	c.cancel()
}

// Wait blocks until every dispatched fetch has finished.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

// SetFilter replaces the active filter, clamping the current page.
func (c *Controller) SetFilter(f Filter) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.filter = f
	c.clampPageLocked()
}

// SetPage jumps to page n, clamped into range.
func (c *Controller) SetPage(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.page = n
	c.clampPageLocked()
}

// NextPage advances one page if there is one.
func (c *Controller) NextPage() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.page++
	c.clampPageLocked()
}

// PrevPage goes back one page if there is one.
func (c *Controller) PrevPage() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.page--
	c.clampPageLocked()
}

// ToggleFavorite flips b's membership and reports whether it is now a favorite.
func (c *Controller) ToggleFavorite(b book.Book) bool {
	c.mu.Lock()
	added := c.favorites.Toggle(b)
	c.mu.Unlock()

	kind := EventFavoriteRemoved
	if added {
		kind = EventFavoriteAdded
	}
	c.notify(Event{Kind: kind, Title: b.Title})
	return added
}

// IsFavorite reports whether a favorite shares b's title.
func (c *Controller) IsFavorite(b book.Book) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.favorites.Contains(b)
}

// Favorites returns the favorites in insertion order.
func (c *Controller) Favorites() []book.Book {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.favorites.List()
}

// State returns a snapshot of the search state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.store.State()
}

// View renders the current page of filtered results.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	filtered := c.store.Filtered(c.filter)
	return View{
		Input:     c.query,
		State:     c.store.State(),
		Facets:    c.store.Facets(),
		Filter:    c.filter,
		Page:      Paginate(filtered, c.page, PageSize),
		Matches:   len(filtered),
		Favorites: c.favorites.Len(),
		Ready:     c.fetcher.Ready(),
	}
}

// trigger runs when the debounce timer fires or on Submit. It reads the
// query current at that moment, not the one that armed the timer.
func (c *Controller) trigger() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	query := strings.TrimSpace(c.query)
	if query == "" {
		event, cleared := c.clearLocked()
		c.mu.Unlock()
		if cleared {
			c.notify(event)
		}
		return
	}

	seq := c.fetcher.Next()
	c.store.SetLoading(query)
	c.inflight.Add(1)
	c.mu.Unlock()

	slog.Debug("Dispatching search", "query", query, "seq", seq)
	c.notify(Event{Kind: EventStarted, Query: query})

	go func() {
		defer c.inflight.Done()
		c.apply(c.fetcher.Search(c.ctx, query, seq))
	}()
}

func (c *Controller) apply(out Outcome) {
	c.mu.Lock()
	if c.closed || !c.fetcher.Current(out.Seq) {
		c.mu.Unlock()
		slog.Debug("Discarding stale search response", "seq", out.Seq, "query", out.Query)
		return
	}

	var event Event
	switch {
	case out.Err != nil:
		c.store.SetError(out.Query, out.Err)
		event = Event{Kind: EventFailed, Query: out.Query, Err: out.Err}
	case len(out.Results) == 0:
		c.store.SetResults(out.Query, out.Results)
		event = Event{Kind: EventEmpty, Query: out.Query}
	default:
		c.store.SetResults(out.Query, out.Results)
		event = Event{Kind: EventSucceeded, Query: out.Query, Count: len(out.Results)}
	}
	c.clampPageLocked()
	c.mu.Unlock()

	c.notify(event)
}

// clearLocked moves to idle and invalidates in-flight fetches. It reports
// false when there was nothing to clear.
func (c *Controller) clearLocked() (Event, bool) {
	c.fetcher.Next()

	st := c.store.State()
	changed := st.Status != StatusIdle || len(st.Results) > 0
	c.store.Clear(c.query)
	c.page = 1

	return Event{Kind: EventCleared}, changed
}

func (c *Controller) clampPageLocked() {
	c.page = Paginate(c.store.Filtered(c.filter), c.page, PageSize).Page
}

func (c *Controller) notify(e Event) {
	if c.notifier != nil {
		c.notifier.Notify(e)
	}
}
