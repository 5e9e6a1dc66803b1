package tracker

import (
	"context"
	"errors"
)

// QuoteProvider is the boundary to the external quote source: one
// best-effort, rate-limited operation. Implementations must honor the
// context deadline; the Cache is the sole mitigation for their latency
// and limits.
type QuoteProvider interface {
	// FetchPrice returns the current price for a ticker, or an error.
	// Errors should be *QuoteError so the cache can tell permanent
	// failures (unknown ticker) from transient ones.
	FetchPrice(ctx context.Context, ticker string) (Money, error)
}

// transientErr wraps err as a transient quote failure for ticker.
func transientErr(ticker string, err error) error {
	return &QuoteError{Ticker: ticker, Err: err}
}

// permanentErr wraps err as a permanent quote failure for ticker.
func permanentErr(ticker string, err error) error {
	return &QuoteError{Ticker: ticker, Permanent: true, Err: err}
}

// isPermanent reports whether err is a permanent quote failure.
func isPermanent(err error) bool {
	var qe *QuoteError
	return errors.As(err, &qe) && qe.Permanent
}

// ProviderFunc adapts a function to the QuoteProvider interface.
type ProviderFunc func(ctx context.Context, ticker string) (Money, error)

func (f ProviderFunc) FetchPrice(ctx context.Context, ticker string) (Money, error) {
	return f(ctx, ticker)
}
