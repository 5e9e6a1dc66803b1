package tracker

import (
	"context"
	"errors"
)

// ValuationResult is the derived view of one position. It is never
// persisted.
//
// When Priced is false the quote source never produced a price for the
// ticker: market value and gain/loss are unknown, not zero. Reporting
// unknown as zero would silently understate losses or gains.
type ValuationResult struct {
	Position Position

	Priced bool // false means the price is Unavailable
	Stale  bool // the price is older than the TTL, kept as fallback

	CurrentPrice Money
	MarketValue  Money // quantity * current price
	GainLoss     Money // market value - total cost
	GainLossPct  Percent
	PctValid     bool // false when total cost is zero
	IsLoss       bool
}

// TotalCost returns the cost basis of the underlying position.
func (v ValuationResult) TotalCost() Money { return v.Position.TotalCost() }

// Summary aggregates valuation figures across the portfolio.
//
// Totals sum only over priced positions; Excluded reports how many
// positions were left out because their price is Unavailable, so totals are
// never silently partial.
type Summary struct {
	TotalCost        Money
	TotalMarketValue Money
	GainLoss         Money
	GainLossPct      Percent
	PctValid         bool
	IsLoss           bool
	Excluded         int
}

// Engine combines position data with cached prices into valuation results.
// It is stateless apart from the cache it prices through.
type Engine struct {
	cache *Cache
}

// NewEngine returns a valuation engine pricing through the given cache.
func NewEngine(cache *Cache) *Engine {
	return &Engine{cache: cache}
}

// Value prices each position through the cache (refreshing stale entries as
// needed) and computes the derived figures, plus the portfolio summary.
func (e *Engine) Value(ctx context.Context, positions []Position) ([]ValuationResult, Summary) {
	results := make([]ValuationResult, 0, len(positions))
	var summary Summary

	for _, p := range positions {
		r := ValuationResult{Position: p}
		cost := p.TotalCost()

		quote, err := e.cache.Price(ctx, p.Ticker)
		switch {
		case errors.Is(err, ErrUnavailable):
			summary.Excluded++
		case err != nil:
			// the cache degrades instead of failing; treat anything else
			// as unavailable too
			summary.Excluded++
		default:
			r.Priced = true
			r.Stale = quote.Stale
			r.CurrentPrice = quote.Price
			r.MarketValue = quote.Price.Mul(p.Quantity)
			r.GainLoss = r.MarketValue.Sub(cost)
			r.IsLoss = r.GainLoss.IsNegative()
			if !cost.IsZero() {
				r.GainLossPct = r.GainLoss.PercentOf(cost)
				r.PctValid = true
			}

			summary.TotalCost = summary.TotalCost.Add(cost)
			summary.TotalMarketValue = summary.TotalMarketValue.Add(r.MarketValue)
		}
		results = append(results, r)
	}

	summary.GainLoss = summary.TotalMarketValue.Sub(summary.TotalCost)
	summary.IsLoss = summary.GainLoss.IsNegative()
	if !summary.TotalCost.IsZero() {
		summary.GainLossPct = summary.GainLoss.PercentOf(summary.TotalCost)
		summary.PctValid = true
	}
	return results, summary
}
