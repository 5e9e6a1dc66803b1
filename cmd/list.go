package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	tracker "github.com/gwally9/investment-tracker"
	"github.com/gwally9/investment-tracker/renderer"
)

// listCmd holds the flags for the 'list' subcommand.
type listCmd struct{}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "display every position with its current valuation" }
func (*listCmd) Usage() string {
	return `ivt list

  Displays a valuation table of all positions: cost basis, current market
  value and gain/loss per position. Positions whose price cannot be fetched
  are listed without valuation and counted apart; prices older than the
  cache window are marked stale.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	results, summary, status := value(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	printMarkdown(renderer.ValuationMarkdown(results, summary))
	return subcommands.ExitSuccess
}

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the portfolio totals" }
func (*summaryCmd) Usage() string {
	return `ivt summary

  Displays the portfolio totals: total cost, total market value and overall
  gain/loss. Positions without an available price are excluded from the
  totals and disclosed as such.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, summary, status := value(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}
	printMarkdown(renderer.SummaryMarkdown(summary))
	return subcommands.ExitSuccess
}

// value loads the store and values every position at current prices.
func value(ctx context.Context) ([]tracker.ValuationResult, tracker.Summary, subcommands.ExitStatus) {
	store, err := DecodeStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return nil, tracker.Summary{}, subcommands.ExitFailure
	}
	cache, err := NewCache()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return nil, tracker.Summary{}, subcommands.ExitUsageError
	}
	results, summary := tracker.NewEngine(cache).Value(ctx, store.Positions())
	return results, summary, subcommands.ExitSuccess
}
