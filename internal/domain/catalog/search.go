package catalog

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// Result is one delivered search outcome. Query is the input the items
// answer, so consumers can double-check freshness.
type Result[T any] struct {
	Query string
	Items []T
	Err   error
}

// Searcher debounces type-ahead input and runs lookups with a
// last-query-wins guarantee: every issued lookup is tagged with a
// monotonically increasing sequence number, and a completion whose tag is
// no longer the newest is discarded, even when round-trips finish out of
// order. Queries shorter than MinQueryLength clear the result set and
// invalidate anything still in flight.
type Searcher[T any] struct {
	lookup   func(ctx context.Context, query string) ([]T, error)
	debounce time.Duration

	mu     sync.Mutex
	seq    uint64
	timer  *time.Timer
	closed bool

	results chan Result[T]
}

// NewSearcher builds a Searcher around a lookup function. The debounce
// interval may be zero, in which case lookups fire immediately.
func NewSearcher[T any](lookup func(ctx context.Context, query string) ([]T, error), debounce time.Duration) *Searcher[T] {
	return &Searcher[T]{
		lookup:   lookup,
		debounce: debounce,
		results:  make(chan Result[T], 1),
	}
}

// Results delivers at most the freshest outcome; an unread stale result is
// replaced in place when a newer one arrives.
func (s *Searcher[T]) Results() <-chan Result[T] {
	return s.results
}

// SetQuery registers new input. Any pending debounce timer and any
// in-flight lookup for an older query are superseded.
func (s *Searcher[T]) SetQuery(ctx context.Context, query string) {
	query = strings.TrimSpace(query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	// Supersede everything issued so far.
	s.seq++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	if utf8.RuneCountInString(query) < MinQueryLength {
		s.deliverLocked(Result[T]{Query: query})
		return
	}

	tag := s.seq
	fire := func() {
		s.mu.Lock()
		if s.closed || tag != s.seq {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		items, err := s.lookup(ctx, query)

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed || tag != s.seq {
			// A newer query was issued while this lookup was in flight.
			return
		}
		s.deliverLocked(Result[T]{Query: query, Items: items, Err: err})
	}

	if s.debounce <= 0 {
		go fire()
		return
	}
	s.timer = time.AfterFunc(s.debounce, fire)
}

// Close stops the searcher; in-flight lookups are no longer honored and the
// results channel is closed.
func (s *Searcher[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	close(s.results)
}

// deliverLocked replaces any unread result with r. Callers hold s.mu.
func (s *Searcher[T]) deliverLocked(r Result[T]) {
	select {
	case s.results <- r:
	default:
		select {
		case <-s.results:
		default:
		}
		s.results <- r
	}
}
