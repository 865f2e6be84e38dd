package search

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDebounce = 20 * time.Millisecond

type fakeSuggester struct {
	mu      sync.Mutex
	queries []string
	delay   time.Duration
	results map[string][]string
}

func newFakeSuggester() *fakeSuggester {
	return &fakeSuggester{results: make(map[string][]string)}
}

func (f *fakeSuggester) Suggest(ctx context.Context, query string) ([]string, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	if r, ok := f.results[query]; ok {
		return r, nil
	}
	return []string{query + "-1", query + "-2"}, nil
}

func (f *fakeSuggester) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

type suggestionSink struct {
	mu      sync.Mutex
	updates [][]string
}

func (s *suggestionSink) accept(suggestions []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates = append(s.updates, suggestions)
}

func (s *suggestionSink) all() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]string(nil), s.updates...)
}

func (s *suggestionSink) waitFor(t *testing.T, n int) [][]string {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if got := s.all(); len(got) >= n {
			return got
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d suggestion updates, got %d", n, len(s.all()))
	return nil
}

func TestBox_Input(t *testing.T) {
	t.Run("Debounced query reaches the suggester", func(t *testing.T) {
		suggester := newFakeSuggester()
		sink := &suggestionSink{}
		box := NewBox(suggester, testDebounce, sink.accept, nil)
		defer box.Close()

		box.Input("mango")

		updates := sink.waitFor(t, 1)
		assert.Equal(t, []string{"mango-1", "mango-2"}, updates[0])
		assert.Equal(t, []string{"mango"}, suggester.seen())
	})

	t.Run("Rapid typing fetches only the last value", func(t *testing.T) {
		suggester := newFakeSuggester()
		sink := &suggestionSink{}
		box := NewBox(suggester, testDebounce, sink.accept, nil)
		defer box.Close()

		box.Input("ma")
		box.Input("man")
		box.Input("mang")
		box.Input("mango")

		updates := sink.waitFor(t, 1)
		assert.Equal(t, []string{"mango-1", "mango-2"}, updates[0])
		assert.Equal(t, []string{"mango"}, suggester.seen())
	})

	t.Run("Identical consecutive input is ignored", func(t *testing.T) {
		suggester := newFakeSuggester()
		sink := &suggestionSink{}
		box := NewBox(suggester, testDebounce, sink.accept, nil)
		defer box.Close()

		box.Input("mango")
		sink.waitFor(t, 1)
		box.Input("mango")

		time.Sleep(3 * testDebounce)
		assert.Equal(t, []string{"mango"}, suggester.seen())
		assert.Len(t, sink.all(), 1)
	})

	t.Run("Short query clears suggestions without a request", func(t *testing.T) {
		suggester := newFakeSuggester()
		sink := &suggestionSink{}
		box := NewBox(suggester, testDebounce, sink.accept, nil)
		defer box.Close()

		box.Input("m")

		updates := sink.waitFor(t, 1)
		assert.Nil(t, updates[0])
		assert.Empty(t, suggester.seen())
	})

	t.Run("Whitespace does not count toward the minimum", func(t *testing.T) {
		suggester := newFakeSuggester()
		sink := &suggestionSink{}
		box := NewBox(suggester, testDebounce, sink.accept, nil)
		defer box.Close()

		box.Input("  m  ")

		updates := sink.waitFor(t, 1)
		assert.Nil(t, updates[0])
		assert.Empty(t, suggester.seen())
	})

	t.Run("Stale response is dropped", func(t *testing.T) {
		suggester := newFakeSuggester()
		suggester.delay = 50 * time.Millisecond
		sink := &suggestionSink{}
		box := NewBox(suggester, testDebounce, sink.accept, nil)
		defer box.Close()

		box.Input("mango")
		// Let the fetch start, then move the input on before it returns.
		time.Sleep(testDebounce + 10*time.Millisecond)
		box.Input("pa")

		time.Sleep(200 * time.Millisecond)
		for _, update := range sink.all() {
			assert.NotEqual(t, []string{"mango-1", "mango-2"}, update)
		}
	})
}

func TestBox_Submit(t *testing.T) {
	suggester := newFakeSuggester()
	var searched []string
	box := NewBox(suggester, testDebounce, nil, func(term string) {
		searched = append(searched, term)
	})
	defer box.Close()

	box.Input("mango")
	box.Submit()

	require.Equal(t, []string{"mango"}, searched)

	// The pending suggest timer was cancelled by Submit.
	time.Sleep(3 * testDebounce)
	assert.Empty(t, suggester.seen())
}

func TestBox_SelectSuggestion(t *testing.T) {
	suggester := newFakeSuggester()
	var searched []string
	box := NewBox(suggester, testDebounce, nil, func(term string) {
		searched = append(searched, term)
	})
	defer box.Close()

	box.SelectSuggestion("mango juice")

	require.Equal(t, []string{"mango juice"}, searched)

	// Adopting a suggestion never triggers another suggest round trip.
	time.Sleep(3 * testDebounce)
	assert.Empty(t, suggester.seen())
}

func TestBox_SetFromVoice(t *testing.T) {
	var searched []string
	box := NewBox(newFakeSuggester(), testDebounce, nil, func(term string) {
		searched = append(searched, term)
	})
	defer box.Close()

	box.SetFromVoice("mangue")

	assert.Equal(t, []string{"mangue"}, searched)
}

func TestBox_Close(t *testing.T) {
	suggester := newFakeSuggester()
	sink := &suggestionSink{}
	box := NewBox(suggester, testDebounce, sink.accept, nil)

	box.Input("mango")
	box.Close()

	time.Sleep(3 * testDebounce)
	assert.Empty(t, suggester.seen())
	assert.Empty(t, sink.all())
}
