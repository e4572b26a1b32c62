package search

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// DefaultDebounce is the quiet period before a query change triggers a search.
const DefaultDebounce = 500 * time.Millisecond

// Debouncer turns a stream of query changes into triggers. Each Change
// restarts the quiet-period timer; a trigger carries the query current at
// the moment it fires.
type Debouncer struct {
	mu     sync.Mutex
	clock  clock.Clock
	delay  time.Duration
	onFire func(query string)

	query string
	timer *clock.Timer
	// gen is bumped whenever the pending timer is replaced or cancelled,
	// so a callback that already started racing a Cancel stays inert.
	gen uint64
}

// NewDebouncer creates a Debouncer. A nil clock means the wall clock and a
// non-positive delay means DefaultDebounce.
func NewDebouncer(clk clock.Clock, delay time.Duration, onFire func(query string)) *Debouncer {
	if clk == nil {
		clk = clock.New()
	}
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{clock: clk, delay: delay, onFire: onFire}
}

// Change records query and restarts the quiet-period timer.
func (d *Debouncer) Change(query string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.query = query
	d.stopLocked()
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Submit triggers immediately for the current query and drops any pending timer.
func (d *Debouncer) Submit() {
	d.mu.Lock()
	d.stopLocked()
	query := d.query
	d.mu.Unlock()

	d.emit(query)
}

// Reset records query without scheduling a trigger and drops any pending timer.
func (d *Debouncer) Reset(query string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.query = query
	d.stopLocked()
}

// Cancel drops any pending timer. The debouncer can still be used afterwards.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
}

// Query returns the most recently recorded query.
func (d *Debouncer) Query() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.query
}

// Pending reports whether a timer is waiting to fire.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.timer != nil
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.gen++
	query := d.query
	d.mu.Unlock()

	d.emit(query)
}

func (d *Debouncer) emit(query string) {
	if d.onFire != nil {
		d.onFire(query)
	}
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}
