package catalog

import (
	"context"
	"sync"
	"testing"
	"time"
)

// gatedLookup lets the test hold individual lookups in flight and release
// them in any order.
type gatedLookup struct {
	mu      sync.Mutex
	entered chan string
	gates   map[string]chan struct{}
}

func newGatedLookup(queries ...string) *gatedLookup {
	g := &gatedLookup{
		entered: make(chan string, 16),
		gates:   make(map[string]chan struct{}),
	}
	for _, q := range queries {
		g.gates[q] = make(chan struct{})
	}
	return g
}

func (g *gatedLookup) lookup(_ context.Context, query string) ([]string, error) {
	g.mu.Lock()
	gate := g.gates[query]
	g.mu.Unlock()

	g.entered <- query
	if gate != nil {
		<-gate
	}
	return []string{query + "-result"}, nil
}

func (g *gatedLookup) release(query string) {
	g.mu.Lock()
	gate := g.gates[query]
	g.mu.Unlock()
	close(gate)
}

func waitEntered(t *testing.T, g *gatedLookup, want string) {
	t.Helper()
	select {
	case got := <-g.entered:
		if got != want {
			t.Fatalf("expected lookup for %q, got %q", want, got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for lookup %q to start", want)
	}
}

func waitResult(t *testing.T, s *Searcher[string]) Result[string] {
	t.Helper()
	select {
	case r := <-s.Results():
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for result")
		return Result[string]{}
	}
}

func TestSearcher_LastQueryWins(t *testing.T) {
	g := newGatedLookup("Am", "Amo")
	s := NewSearcher(g.lookup, 0)
	defer s.Close()
	ctx := context.Background()

	s.SetQuery(ctx, "Am")
	waitEntered(t, g, "Am")

	s.SetQuery(ctx, "Amo")
	waitEntered(t, g, "Amo")

	// The newer lookup finishes first and must be delivered.
	g.release("Amo")
	r := waitResult(t, s)
	if r.Query != "Amo" || len(r.Items) != 1 || r.Items[0] != "Amo-result" {
		t.Fatalf("expected Amo result, got %+v", r)
	}

	// The stale lookup finishes afterwards and must be discarded, never
	// overwriting the newer result.
	g.release("Am")
	select {
	case r := <-s.Results():
		t.Fatalf("stale lookup delivered a result: %+v", r)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSearcher_StaleCompletionAfterNewerResult(t *testing.T) {
	// Same ordering property, but the stale result is released while the
	// consumer has not read anything yet: the buffered slot must hold the
	// newest result only.
	g := newGatedLookup("fe", "fev")
	s := NewSearcher(g.lookup, 0)
	defer s.Close()
	ctx := context.Background()

	s.SetQuery(ctx, "fe")
	waitEntered(t, g, "fe")
	s.SetQuery(ctx, "fev")
	waitEntered(t, g, "fev")

	g.release("fe")  // stale, dropped by sequence check
	g.release("fev") // fresh

	r := waitResult(t, s)
	if r.Query != "fev" {
		t.Fatalf("expected fev result, got %+v", r)
	}
}

func TestSearcher_ShortQueryClears(t *testing.T) {
	g := newGatedLookup()
	s := NewSearcher(g.lookup, 0)
	defer s.Close()

	s.SetQuery(context.Background(), "A")
	r := waitResult(t, s)
	if r.Query != "A" || r.Items != nil || r.Err != nil {
		t.Fatalf("expected empty clearing result, got %+v", r)
	}

	// No lookup may have been issued.
	select {
	case q := <-g.entered:
		t.Fatalf("unexpected lookup for %q", q)
	default:
	}
}

func TestSearcher_DebounceCoalesces(t *testing.T) {
	g := newGatedLookup()
	s := NewSearcher(g.lookup, 40*time.Millisecond)
	defer s.Close()
	ctx := context.Background()

	s.SetQuery(ctx, "Am")
	s.SetQuery(ctx, "Amo") // within the debounce window

	waitEntered(t, g, "Amo")
	r := waitResult(t, s)
	if r.Query != "Amo" {
		t.Fatalf("expected Amo, got %+v", r)
	}

	// Only one lookup ran.
	select {
	case q := <-g.entered:
		t.Fatalf("extra lookup for %q", q)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSearcher_CloseStopsInFlight(t *testing.T) {
	g := newGatedLookup("Napa")
	s := NewSearcher(g.lookup, 0)
	ctx := context.Background()

	s.SetQuery(ctx, "Napa")
	waitEntered(t, g, "Napa")

	s.Close()
	g.release("Napa")

	// The channel is closed; no result from the abandoned lookup arrives.
	select {
	case r, ok := <-s.Results():
		if ok {
			t.Fatalf("result delivered after Close: %+v", r)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("results channel not closed")
	}
}
