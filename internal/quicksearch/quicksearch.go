// Package quicksearch implements the global SKU lookup: input is debounced,
// normalized to uppercase, and matched exactly against all products' SKUs.
// Every dispatch carries a monotonically increasing sequence number; only a
// completion whose sequence still equals the latest dispatch is applied, so
// the displayed state always reflects the most recent still-current query
// even when an older, slower lookup resolves after a newer one.
package quicksearch

import (
	"strings"
	"sync"
	"time"

	"pricecheck/internal/store"
)

const (
	// DefaultDelay is the quiet period after the last keystroke before a
	// lookup is dispatched.
	DefaultDelay = 300 * time.Millisecond

	// NoMatchMessage is the informational (non-error) text shown when no
	// product carries the searched SKU.
	NoMatchMessage = "No product found for that SKU."
)

// Lookup resolves a normalized SKU to a product joined with its category.
// *store.ProductStore satisfies this directly.
type Lookup interface {
	FindBySKU(sku string) (*store.SKUMatch, error)
}

// State is the quick-search panel's view state. Exactly one of Result,
// Message, or Err is set on a completed search; all are clear while idle.
type State struct {
	Query     string           `json:"query,omitempty"`
	Searching bool             `json:"searching,omitempty"`
	Result    *store.SKUMatch  `json:"result,omitempty"`
	Message   string           `json:"message,omitempty"`
	Err       string           `json:"error,omitempty"`
}

// Normalize prepares raw input for an SKU lookup.
func Normalize(query string) string {
	return strings.ToUpper(strings.TrimSpace(query))
}

// Do performs one synchronous lookup, mapping outcomes the same way the
// debounced path does. Empty or whitespace-only input yields the cleared
// state without touching the store. Remote errors are surfaced verbatim.
func Do(lookup Lookup, query string) State {
	normalized := Normalize(query)
	if normalized == "" {
		return State{}
	}

	st := State{Query: normalized}
	match, err := lookup.FindBySKU(normalized)
	switch {
	case err != nil:
		st.Err = err.Error()
	case match == nil:
		st.Message = NoMatchMessage
	default:
		st.Result = match
	}
	return st
}

// Searcher drives debounced, race-free SKU search over a Lookup. Each state
// change is delivered to the sink; stale completions are dropped before
// they reach it.
type Searcher struct {
	lookup Lookup
	delay  time.Duration
	sink   func(State)

	mu    sync.Mutex
	seq   uint64
	timer *time.Timer
	last  State
}

// New creates a Searcher. delay <= 0 uses DefaultDelay. The sink is invoked
// with the searcher's lock held and must not call back into the Searcher.
func New(lookup Lookup, delay time.Duration, sink func(State)) *Searcher {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Searcher{lookup: lookup, delay: delay, sink: sink}
}

// Input feeds one keystroke's worth of query text. Non-empty input restarts
// the debounce timer; a lookup fires only after the input has been quiet for
// the full delay. Empty input clears the panel immediately and invalidates
// any in-flight lookup so its late completion is discarded.
func (s *Searcher) Input(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	normalized := Normalize(query)
	if normalized == "" {
		s.seq++ // supersede anything in flight
		s.push(State{})
		return
	}

	s.timer = time.AfterFunc(s.delay, func() { s.dispatch(normalized) })
}

// Current returns the most recently published state.
func (s *Searcher) Current() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Close cancels any pending dispatch and invalidates in-flight lookups.
func (s *Searcher) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.seq++
}

func (s *Searcher) dispatch(normalized string) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.push(State{Query: normalized, Searching: true})
	s.mu.Unlock()

	// The lookup itself is not abortable; staleness is handled below.
	st := Do(s.lookup, normalized)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		return // superseded while in flight; drop silently
	}
	s.push(st)
}

// push records and publishes a state. Callers hold s.mu.
func (s *Searcher) push(st State) {
	s.last = st
	if s.sink != nil {
		s.sink(st)
	}
}
