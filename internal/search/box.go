package search

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/mamadbah2/Nexus/internal/logger"
)

const (
	defaultDebounce = 300 * time.Millisecond
	minQueryLength  = 2

	// Suggest traffic cap, matching the backend's general tier.
	suggestLimit = rate.Limit(10)
	suggestBurst = 20
)

// Suggester provides autocomplete candidates for a partial query.
type Suggester interface {
	Suggest(ctx context.Context, query string) ([]string, error)
}

// Box drives the search input: it debounces keystrokes, skips repeated
// queries, asks the backend for suggestions and emits the committed search
// term. Suggestion responses that arrive after the input has moved on are
// dropped.
type Box struct {
	suggester     Suggester
	onSuggestions func([]string)
	onSearch      func(string)
	debounce      time.Duration
	limiter       *rate.Limiter

	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	query string
	timer *time.Timer
	seq   uint64
}

// NewBox wires a search box. onSuggestions receives every suggestion update
// (possibly empty), onSearch the committed term. Pass debounce <= 0 for the
// default 300ms.
func NewBox(suggester Suggester, debounce time.Duration, onSuggestions func([]string), onSearch func(string)) *Box {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Box{
		suggester:     suggester,
		onSuggestions: onSuggestions,
		onSearch:      onSearch,
		debounce:      debounce,
		limiter:       rate.NewLimiter(suggestLimit, suggestBurst),
		ctx:           ctx,
		cancel:        cancel,
	}
}

// Input records a keystroke. Identical consecutive values are ignored;
// queries shorter than two runes clear the suggestions instead of hitting
// the backend.
func (b *Box) Input(text string) {
	b.mu.Lock()

	if text == b.query {
		b.mu.Unlock()
		return
	}
	b.query = text
	b.seq++
	seq := b.seq

	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}

	if utf8.RuneCountInString(strings.TrimSpace(text)) < minQueryLength {
		b.mu.Unlock()
		b.deliver(seq, nil)
		return
	}

	b.timer = time.AfterFunc(b.debounce, func() {
		b.fetch(seq, text)
	})
	b.mu.Unlock()
}

// Submit commits the current query without waiting for suggestions.
func (b *Box) Submit() {
	b.mu.Lock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	query := b.query
	b.mu.Unlock()

	if b.onSearch != nil {
		b.onSearch(query)
	}
}

// SelectSuggestion adopts a suggestion as the query and commits it, without
// triggering another suggest round trip.
func (b *Box) SelectSuggestion(s string) {
	b.mu.Lock()
	b.query = s
	b.seq++
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.mu.Unlock()

	if b.onSearch != nil {
		b.onSearch(s)
	}
}

// SetFromVoice injects a dictated term and commits it.
func (b *Box) SetFromVoice(term string) {
	b.SelectSuggestion(term)
}

// Close tears the box down: the pending timer is stopped and in-flight
// suggest requests are cancelled so nothing updates a destroyed view.
func (b *Box) Close() {
	b.mu.Lock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.mu.Unlock()
	b.cancel()
}

func (b *Box) fetch(seq uint64, query string) {
	if b.ctx.Err() != nil {
		return
	}
	if !b.limiter.Allow() {
		return
	}

	suggestions, err := b.suggester.Suggest(b.ctx, query)
	if err != nil {
		logger.L().Debug("suggest failed", zap.String("query", query), zap.Error(err))
		return
	}

	b.deliver(seq, suggestions)
}

func (b *Box) deliver(seq uint64, suggestions []string) {
	b.mu.Lock()
	stale := seq != b.seq
	b.mu.Unlock()

	if stale || b.ctx.Err() != nil {
		return
	}
	if b.onSuggestions != nil {
		b.onSuggestions(suggestions)
	}
}
