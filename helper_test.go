package tracker

import (
	"context"
	"sync"
	"time"
)

func USD(v float64) Money { return M(v, "USD") }

// fakeProvider is a scriptable quote source recording every fetch.
type fakeProvider struct {
	mu     sync.Mutex
	prices map[string]Money
	errs   map[string]error
	calls  map[string]int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		prices: make(map[string]Money),
		errs:   make(map[string]error),
		calls:  make(map[string]int),
	}
}

func (f *fakeProvider) set(ticker string, price Money) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prices[ticker] = price
	delete(f.errs, ticker)
}

func (f *fakeProvider) fail(ticker string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[ticker] = err
}

func (f *fakeProvider) count(ticker string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[ticker]
}

func (f *fakeProvider) FetchPrice(_ context.Context, ticker string) (Money, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[ticker]++
	if err, ok := f.errs[ticker]; ok {
		return Money{}, err
	}
	price, ok := f.prices[ticker]
	if !ok {
		return Money{}, permanentErr(ticker, ErrUnavailable)
	}
	return price, nil
}

// testCache returns a cache over the provider with a clock the test can
// move.
func testCache(p QuoteProvider) (*Cache, *time.Time) {
	c := NewCache(p)
	now := time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	return c, &now
}

func mustPosition(t interface{ Fatalf(string, ...any) }, ticker string, qty, price, fees float64) Position {
	p, err := NewPosition(ticker, "", Q(qty), USD(price), USD(fees))
	if err != nil {
		t.Fatalf("NewPosition(%q) error = %v", ticker, err)
	}
	return p
}
