package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	tracker "github.com/gwally9/investment-tracker"
)

// addCmd holds the flags for the 'add' subcommand.
type addCmd struct {
	ticker      string
	description string
	quantity    string
	price       string
	fees        string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a new position to the portfolio" }
func (*addCmd) Usage() string {
	return `ivt add -ticker <ticker> -quantity <n> -price <amount> [-fees <amount>] [-description <text>]

  Adds a new position to the portfolio file:
  - ticker: The ticker symbol of the instrument (e.g., "NVDA"). Stored upper-case.
  - quantity: Number of units held. Must be positive.
  - price: Purchase price per unit.
  - fees: One-time transaction cost (defaults to 0).

Usage Examples:
# Buy 10 shares of ABC at 5.00 with 1.00 fees.
$ ivt add -ticker ABC -quantity 10 -price 5 -fees 1

`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "ticker", "", "Ticker symbol (required)")
	f.StringVar(&c.description, "description", "", "Free-form description of the position")
	f.StringVar(&c.quantity, "quantity", "", "Number of units (required)")
	f.StringVar(&c.price, "price", "", "Purchase price per unit (required)")
	f.StringVar(&c.fees, "fees", "0", "One-time transaction cost")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || c.quantity == "" || c.price == "" {
		fmt.Fprintln(os.Stderr, "Error: -ticker, -quantity and -price flags are required.")
		return subcommands.ExitUsageError
	}

	quantity, err := parseQuantity(c.quantity)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	price, err := parseMoney(c.price)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	fees, err := parseMoney(c.fees)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	p, err := tracker.NewPosition(c.ticker, c.description, quantity, price, fees)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	store, err := DecodeStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := store.Add(p); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := EncodeStore(store); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully added %s x %s to %s (id %s)\n", c.ticker, quantity, *portfolioFile, p.ID)
	return subcommands.ExitSuccess
}
