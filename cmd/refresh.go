package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type refreshCmd struct{}

func (*refreshCmd) Name() string     { return "refresh" }
func (*refreshCmd) Synopsis() string { return "fetch a fresh price for every held ticker" }
func (*refreshCmd) Usage() string {
	return `ivt refresh

  Fetches a fresh price for every distinct ticker in the portfolio,
  bypassing cached values. Tickers whose quote source fails are reported;
  the command still succeeds for the others.
`
}

func (c *refreshCmd) SetFlags(f *flag.FlagSet) {}

func (c *refreshCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := DecodeStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	cache, err := NewCache()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	tickers := store.Tickers()
	cache.Clear()
	if err := cache.RefreshAll(ctx, tickers); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: some prices could not be fetched: %v\n", err)
	}

	fetched := 0
	for _, t := range tickers {
		if q, ok := cache.Lookup(t); ok && q.Price != nil {
			fetched++
			fmt.Printf("%s: %s\n", t, q.Price)
		}
	}
	fmt.Printf("Refreshed %d/%d tickers\n", fetched, len(tickers))
	return subcommands.ExitSuccess
}
