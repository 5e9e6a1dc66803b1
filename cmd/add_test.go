package cmd

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
)

// tempPortfolio points the global portfolio file at a throwaway path for
// the duration of one test.
func tempPortfolio(t *testing.T) {
	t.Helper()
	old := *portfolioFile
	*portfolioFile = filepath.Join(t.TempDir(), "portfolio.jsonl")
	t.Cleanup(func() { *portfolioFile = old })
}

func TestAddCmd(t *testing.T) {
	tempPortfolio(t)

	c := &addCmd{ticker: "abc", description: "test co", quantity: "10", price: "5", fees: "1"}
	if got := c.Execute(context.Background(), nil); got != subcommands.ExitSuccess {
		t.Fatalf("add Execute() = %v, want success", got)
	}

	store, err := DecodeStore()
	if err != nil {
		t.Fatal(err)
	}
	if store.Len() != 1 {
		t.Fatalf("store has %d positions, want 1", store.Len())
	}
	p := store.Positions()[0]
	if p.Ticker != "ABC" {
		t.Errorf("ticker = %q, want normalized %q", p.Ticker, "ABC")
	}
	if got := p.TotalCost().String(); got != "$51.00" {
		t.Errorf("total cost = %s, want $51.00", got)
	}
}

func TestAddCmd_missingFlags(t *testing.T) {
	tempPortfolio(t)

	c := &addCmd{ticker: "ABC"}
	if got := c.Execute(context.Background(), nil); got != subcommands.ExitUsageError {
		t.Errorf("add Execute() without -quantity = %v, want usage error", got)
	}
}

func TestEditCmd_keepsUnsetFields(t *testing.T) {
	tempPortfolio(t)

	add := &addCmd{ticker: "ABC", description: "test co", quantity: "10", price: "5", fees: "1"}
	if got := add.Execute(context.Background(), nil); got != subcommands.ExitSuccess {
		t.Fatalf("add Execute() = %v, want success", got)
	}
	store, err := DecodeStore()
	if err != nil {
		t.Fatal(err)
	}
	id := store.Positions()[0].ID

	edit := &editCmd{id: id, quantity: "20"}
	if got := edit.Execute(context.Background(), nil); got != subcommands.ExitSuccess {
		t.Fatalf("edit Execute() = %v, want success", got)
	}

	store, err = DecodeStore()
	if err != nil {
		t.Fatal(err)
	}
	p := store.Positions()[0]
	if got := p.Quantity.String(); got != "20" {
		t.Errorf("quantity = %s, want 20", got)
	}
	if p.Description != "test co" {
		t.Errorf("description = %q, want it kept", p.Description)
	}
}

func TestDeleteCmd_unknownID(t *testing.T) {
	tempPortfolio(t)

	c := &deleteCmd{id: "no-such-id"}
	if got := c.Execute(context.Background(), nil); got != subcommands.ExitFailure {
		t.Errorf("delete Execute() on unknown id = %v, want failure", got)
	}
}
