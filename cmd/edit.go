package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// editCmd holds the flags for the 'edit' subcommand. Flags left unset keep
// the current value; the ticker of a position cannot change.
type editCmd struct {
	id          string
	description string
	quantity    string
	price       string
	fees        string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "edit an existing position" }
func (*editCmd) Usage() string {
	return `ivt edit -id <id> [-quantity <n>] [-price <amount>] [-fees <amount>] [-description <text>]

  Edits a position in place. Only the given flags change; everything else
  is kept. The ticker is immutable: to change instrument, delete the
  position and add a new one.

Usage Examples:
# The position now holds 20 units.
$ ivt edit -id 3e8b... -quantity 20

`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Identifier of the position to edit (required)")
	f.StringVar(&c.description, "description", "", "New description")
	f.StringVar(&c.quantity, "quantity", "", "New number of units")
	f.StringVar(&c.price, "price", "", "New purchase price per unit")
	f.StringVar(&c.fees, "fees", "", "New one-time transaction cost")
}

func (c *editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id flag is required.")
		return subcommands.ExitUsageError
	}

	store, err := DecodeStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	current, ok := store.Get(c.id)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: no position with id %q.\n", c.id)
		return subcommands.ExitFailure
	}

	description := current.Description
	if c.description != "" {
		description = c.description
	}
	quantity := current.Quantity
	if c.quantity != "" {
		if quantity, err = parseQuantity(c.quantity); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitUsageError
		}
	}
	price := current.PurchasePrice
	if c.price != "" {
		if price, err = parseMoney(c.price); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitUsageError
		}
	}
	fees := current.Fees
	if c.fees != "" {
		if fees, err = parseMoney(c.fees); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitUsageError
		}
	}

	if _, err := store.Edit(c.id, description, quantity, price, fees); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := EncodeStore(store); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully updated position %s (%s)\n", c.id, current.Ticker)
	return subcommands.ExitSuccess
}
