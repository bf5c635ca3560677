package quotable

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/source"
)

// Quote length bounds requested from the API.
const (
	MinLength = 50
	MaxLength = 150
)

type randomQuote struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

// Adapter implements source.QuoteSource for api.quotable.io.
type Adapter struct {
	client *source.Client
}

func NewAdapter(baseURL string, timeout time.Duration) *Adapter {
	return &Adapter{client: source.NewClient(source.ProviderQuotable, baseURL, timeout)}
}

// Quote fetches GET /random.
func (a *Adapter) Quote(ctx context.Context) (model.Quote, error) {
	q := url.Values{
		"minLength": {fmt.Sprint(MinLength)},
		"maxLength": {fmt.Sprint(MaxLength)},
	}

	var resp randomQuote
	if err := a.client.Get(ctx, "/random", q, &resp); err != nil {
		return model.Quote{}, fmt.Errorf("fetching quote: %w", err)
	}

	text := strings.TrimSpace(resp.Content)
	if text == "" {
		return model.Quote{}, a.client.Decode(fmt.Errorf("quote without content: %w", source.ErrEmptyResponse))
	}

	author := strings.TrimSpace(resp.Author)
	if author == "" {
		author = "Unknown"
	}

	return model.Quote{Text: text, Author: author}, nil
}
