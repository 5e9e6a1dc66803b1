// Package cmd implements the CLI application to manage a portfolio of
// positions.
package cmd

import (
	"flag"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	tracker "github.com/gwally9/investment-tracker"
)

// Commands lists every subcommand. A main package registers them all and
// executes the user-selected one.
var Commands = []subcommands.Command{
	&addCmd{},
	&editCmd{},
	&deleteCmd{},
	&listCmd{},
	&summaryCmd{},
	&refreshCmd{},
	&exportCmd{},
	&importCmd{},
	&serveCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

var portfolioFile = flag.String("file", "portfolio.jsonl", "Path to the file containing positions (JSONL format)")
var defaultCurrency = flag.String("currency", "USD", "Currency positions are denominated in, 3-letter code")
var quoteProvider = flag.String("provider", "yahoo", "Quote source for current prices (yahoo, stooq)")

// DecodeStore loads the position store from the app default portfolio file.
// A missing file yields an empty store.
func DecodeStore() (*tracker.Store, error) {
	return tracker.LoadStore(*portfolioFile)
}

// EncodeStore writes the store back to the app default portfolio file.
func EncodeStore(s *tracker.Store) error {
	return s.Save(*portfolioFile)
}

// NewCache builds the price cache over the configured quote source.
func NewCache() (*tracker.Cache, error) {
	var provider tracker.QuoteProvider
	switch *quoteProvider {
	case "yahoo":
		provider = tracker.NewYahoo()
	case "stooq":
		provider = tracker.NewStooq()
	default:
		return nil, fmt.Errorf("unknown quote provider %q (supported: yahoo, stooq)", *quoteProvider)
	}
	return tracker.NewCache(provider), nil
}

// parseQuantity parses a user-entered quantity flag.
func parseQuantity(s string) (tracker.Quantity, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return tracker.Quantity{}, fmt.Errorf("invalid quantity %q: %w", s, err)
	}
	return tracker.Q(d), nil
}

// parseMoney parses a user-entered amount flag in the default currency.
func parseMoney(s string) (tracker.Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return tracker.Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return tracker.M(d, *defaultCurrency), nil
}

// printMarkdown renders a markdown document to the terminal.
func printMarkdown(doc string) {
	out, err := glamour.Render(doc, "auto")
	if err != nil {
		// fall back to the raw document rather than losing the report
		fmt.Println(doc)
		return
	}
	fmt.Print(out)
}
