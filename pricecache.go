package tracker

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

const (
	// DefaultTTL is the maximum age of a cached price before a refresh is
	// attempted.
	DefaultTTL = 5 * time.Minute
	// DefaultFetchTimeout bounds a single quote fetch, so no valuation
	// blocks indefinitely on the quote source.
	DefaultFetchTimeout = 10 * time.Second
	// DefaultPermanentRetry is how long an unknown ticker is left alone
	// before probing the quote source again, in case the instrument
	// becomes listed.
	DefaultPermanentRetry = time.Hour
)

// CachedQuote is the last known price for a ticker.
type CachedQuote struct {
	Ticker    string
	Price     *Money    // nil if never fetched successfully
	FetchedAt time.Time // time of the last successful fetch

	failedAt  time.Time
	permanent bool
}

// Quote is a price as served by the cache. Stale marks a value older than
// the TTL, returned because a refresh attempt failed.
type Quote struct {
	Ticker    string
	Price     Money
	FetchedAt time.Time
	Stale     bool
}

// Cache holds the most recently fetched price per ticker and refreshes
// entries through the QuoteProvider when they turn stale. It is the only
// component that writes to the quote map.
//
// A Cache starts empty and is cleared only by explicit action. Tune TTL,
// FetchTimeout and PermanentRetry before first use.
type Cache struct {
	TTL            time.Duration
	FetchTimeout   time.Duration
	PermanentRetry time.Duration

	provider QuoteProvider

	mu     sync.Mutex
	quotes map[string]*CachedQuote
	now    func() time.Time
}

// NewCache returns an empty price cache in front of the given provider.
func NewCache(provider QuoteProvider) *Cache {
	return &Cache{
		TTL:            DefaultTTL,
		FetchTimeout:   DefaultFetchTimeout,
		PermanentRetry: DefaultPermanentRetry,
		provider:       provider,
		quotes:         make(map[string]*CachedQuote),
		now:            time.Now,
	}
}

// Price returns the current price for a ticker.
//
// A fresh cached value is returned immediately, without calling the
// provider. A stale or missing value triggers a fetch bounded by
// FetchTimeout; on failure the last known value is returned flagged Stale,
// or ErrUnavailable when no value was ever obtained. Provider errors are
// never fatal here: they only degrade the answer.
func (c *Cache) Price(ctx context.Context, ticker string) (Quote, error) {
	ticker = NormalizeTicker(ticker)

	c.mu.Lock()
	q, ok := c.quotes[ticker]
	if !ok {
		q = &CachedQuote{Ticker: ticker}
		c.quotes[ticker] = q
	}
	now := c.now()
	if q.Price != nil && now.Sub(q.FetchedAt) < c.TTL {
		quote := Quote{Ticker: ticker, Price: *q.Price, FetchedAt: q.FetchedAt}
		c.mu.Unlock()
		return quote, nil
	}
	if q.permanent && now.Sub(q.failedAt) < c.PermanentRetry {
		// the source does not know this ticker, don't hammer it
		quote, err := fallback(q)
		c.mu.Unlock()
		return quote, err
	}
	c.mu.Unlock()

	fctx, cancel := context.WithTimeout(ctx, c.FetchTimeout)
	defer cancel()
	price, err := c.provider.FetchPrice(fctx, ticker)

	c.mu.Lock()
	defer c.mu.Unlock()

	q, ok = c.quotes[ticker]
	if !ok {
		// the ticker was pruned mid-fetch; discard the result
		if err != nil {
			return Quote{}, ErrUnavailable
		}
		return Quote{Ticker: ticker, Price: price, FetchedAt: c.now()}, nil
	}

	if err != nil {
		q.failedAt = c.now()
		if isPermanent(err) && !q.permanent {
			q.permanent = true
			log.Printf("quote source does not know %q, will retry in %v: %v", ticker, c.PermanentRetry, err)
		}
		return fallback(q)
	}

	p := price
	q.Price = &p
	q.FetchedAt = c.now()
	q.permanent = false
	return Quote{Ticker: ticker, Price: p, FetchedAt: q.FetchedAt}, nil
}

// fallback serves the last known value of q, flagged stale, or
// ErrUnavailable. Callers must hold the cache lock.
func fallback(q *CachedQuote) (Quote, error) {
	if q.Price == nil {
		return Quote{}, ErrUnavailable
	}
	return Quote{Ticker: q.Ticker, Price: *q.Price, FetchedAt: q.FetchedAt, Stale: true}, nil
}

// RefreshAll refreshes the price of every given ticker, one concurrent
// fetch per ticker with no ordering between them. It returns the joined
// errors of the tickers that ended up Unavailable.
func (c *Cache) RefreshAll(ctx context.Context, tickers []string) error {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var errs error

	for _, ticker := range tickers {
		wg.Add(1)
		go func(ticker string) {
			defer wg.Done()
			if _, err := c.Price(ctx, ticker); err != nil {
				mu.Lock()
				errs = errors.Join(errs, &QuoteError{Ticker: ticker, Err: err})
				mu.Unlock()
			}
		}(ticker)
	}
	wg.Wait()
	return errs
}

// Clear drops every cached quote, forcing the next valuation to re-fetch.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quotes = make(map[string]*CachedQuote)
}

// Prune drops quotes for tickers no position references anymore. A fetch in
// flight for a pruned ticker is abandoned: its result is discarded.
func (c *Cache) Prune(live []string) {
	keep := make(map[string]struct{}, len(live))
	for _, t := range live {
		keep[NormalizeTicker(t)] = struct{}{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for ticker := range c.quotes {
		if _, ok := keep[ticker]; !ok {
			delete(c.quotes, ticker)
		}
	}
}

// Lookup returns the cached quote for a ticker without fetching.
func (c *Cache) Lookup(ticker string) (CachedQuote, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	q, ok := c.quotes[NormalizeTicker(ticker)]
	if !ok || q.Price == nil {
		return CachedQuote{}, false
	}
	return *q, true
}
