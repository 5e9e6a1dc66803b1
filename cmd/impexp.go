package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	tracker "github.com/gwally9/investment-tracker"
)

// exportCmd holds the flags for the 'export' subcommand.
type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the valued portfolio as CSV" }
func (*exportCmd) Usage() string {
	return `ivt export [-o <file>]

  Writes the portfolio to CSV, one row per position plus a TOTAL summary
  row, valued at current prices. Cells that depend on an unavailable price
  are left empty. Writes to stdout unless -o is given.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file (defaults to stdout)")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	results, summary, status := value(ctx)
	if status != subcommands.ExitSuccess {
		return status
	}

	var w io.Writer = os.Stdout
	if c.output != "" {
		file, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		w = file
	}

	if err := tracker.ExportCSV(w, results, summary); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.output != "" {
		fmt.Printf("Successfully exported %d position(s) to %s\n", len(results), c.output)
	}
	return subcommands.ExitSuccess
}

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct {
	input string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import positions from a CSV file" }
func (*importCmd) Usage() string {
	return `ivt import -i <file>

  Reads positions from a CSV file with the export column layout. Derived
  columns and the TOTAL row are ignored; every imported row is validated
  and added as a new position.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "CSV file to import (required)")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.input == "" {
		fmt.Fprintln(os.Stderr, "Error: -i flag is required.")
		return subcommands.ExitUsageError
	}

	file, err := os.Open(c.input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", c.input, err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	positions, err := tracker.ImportPositions(file, *defaultCurrency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing %q: %v\n", c.input, err)
		return subcommands.ExitFailure
	}

	store, err := DecodeStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, p := range positions {
		if err := store.Add(p); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
	}
	if err := EncodeStore(store); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully imported %d position(s) from %s\n", len(positions), c.input)
	return subcommands.ExitSuccess
}
