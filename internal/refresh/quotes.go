package refresh

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/source"
)

const quoteTimeout = 10 * time.Second

// FallbackQuotes are served when the quote provider is unreachable.
var FallbackQuotes = []model.Quote{
	{Text: "The only way to do great work is to love what you do.", Author: "Steve Jobs"},
	{Text: "Innovation distinguishes between a leader and a follower.", Author: "Steve Jobs"},
	{Text: "Life is what happens to you while you're busy making other plans.", Author: "John Lennon"},
	{Text: "The future belongs to those who believe in the beauty of their dreams.", Author: "Eleanor Roosevelt"},
	{Text: "It is during our darkest moments that we must focus to see the light.", Author: "Aristotle"},
}

// Quotes fetches a quote, substituting a built-in one on any failure.
type Quotes struct {
	source source.QuoteSource

	mu      sync.Mutex
	pick    func(n int) int
	current model.Quote
}

// NewQuotes returns a Quotes refresher. src may be nil to always use the
// built-in list.
func NewQuotes(src source.QuoteSource) *Quotes {
	return &Quotes{source: src, pick: rand.IntN}
}

// Next returns a fresh quote. It never fails.
func (q *Quotes) Next(ctx context.Context) model.Quote {
	quote, ok := q.fetch(ctx)
	if !ok {
		quote = q.fallback()
	}

	q.mu.Lock()
	q.current = quote
	q.mu.Unlock()
	return quote
}

// Current returns the last quote returned by Next.
func (q *Quotes) Current() model.Quote {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.current
}

func (q *Quotes) fetch(ctx context.Context) (model.Quote, bool) {
	if q.source == nil {
		return model.Quote{}, false
	}

	ctx, cancel := context.WithTimeout(ctx, quoteTimeout)
	defer cancel()

	quote, err := q.source.Quote(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("quote provider failed, using built-in quote")
		return model.Quote{}, false
	}
	return quote, true
}

func (q *Quotes) fallback() model.Quote {
	q.mu.Lock()
	i := q.pick(len(FallbackQuotes))
	q.mu.Unlock()

	quote := FallbackQuotes[i]
	quote.Fallback = true
	return quote
}
