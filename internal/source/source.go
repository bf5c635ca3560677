package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/nhle/dashboard/internal/model"
)

// Provider identifies a remote data provider.
type Provider string

const (
	ProviderWttr      Provider = "wttr.in"
	ProviderOpenMeteo Provider = "open-meteo"
	ProviderQuotable  Provider = "quotable"
)

// ErrorKind classifies a provider failure.
type ErrorKind string

const (
	// KindTransport covers DNS, connection and timeout failures.
	KindTransport ErrorKind = "transport"
	// KindStatus is a non-2xx HTTP response.
	KindStatus ErrorKind = "status"
	// KindRateLimited means retries on 429 were exhausted.
	KindRateLimited ErrorKind = "rate-limited"
	// KindDecode is a response body that does not have the expected shape.
	KindDecode ErrorKind = "decode"
)

// ProviderError is returned by every provider client.
type ProviderError struct {
	Provider Provider
	Kind     ErrorKind
	// Status is the HTTP status code for KindStatus and KindRateLimited.
	Status int
	Err    error
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s error (%d): %v", e.Provider, e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("%s %s error: %v", e.Provider, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// AsProviderError returns the ProviderError in err's chain, if any.
func AsProviderError(err error) (*ProviderError, bool) {
	var perr *ProviderError
	if errors.As(err, &perr) {
		return perr, true
	}
	return nil, false
}

// WeatherSource fetches current conditions for a city.
type WeatherSource interface {
	Name() Provider

	// Weather returns the current conditions. Sources that cannot look up
	// places by name report their own fixed location in the result.
	Weather(ctx context.Context, city string) (*model.WeatherReport, error)
}

// QuoteSource fetches a random quote.
type QuoteSource interface {
	Quote(ctx context.Context) (model.Quote, error)
}
