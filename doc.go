// Package tracker provides the core types and logic for a personal
// investment portfolio tracker. It records purchased positions, refreshes
// their market prices from an external quote source through a TTL-based
// cache, and computes per-position and portfolio-level profit/loss figures.
//
// The main pieces are:
//   - Store: the durable record of user-entered positions, persisted to a
//     single human-readable JSONL file.
//   - Cache: the price cache in front of a QuoteProvider. It is the only
//     writer of cached quotes and degrades to stale values (or Unavailable)
//     when the quote source fails, so a transient outage never blanks out
//     the portfolio view.
//   - Engine: the valuation engine combining Store and Cache data into
//     ValuationResult rows and a portfolio Summary.
//
// All monetary arithmetic is exact, on top of decimal values; formatting
// for display (including the accounting convention of parenthesized losses)
// is kept out of the engine and lives in the Money helpers and the
// renderer package.
//
// This package serves as the foundational logic for the `ivt` command-line
// tool and the HTTP API in the server package.
package tracker
