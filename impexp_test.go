package tracker

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func exportScenario(t *testing.T) ([]ValuationResult, Summary) {
	t.Helper()
	provider := newFakeProvider()
	provider.set("ABC", USD(6.00))
	cache, _ := testCache(provider)
	engine := NewEngine(cache)

	abc := scenarioPosition(t)
	abc.Description = "test co"
	zzz := mustPosition(t, "ZZZ", 5, 10, 0)
	return engine.Value(context.Background(), []Position{abc, zzz})
}

func TestExportCSV(t *testing.T) {
	results, summary := exportScenario(t)

	var buf bytes.Buffer
	if err := ExportCSV(&buf, results, summary); err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 { // header, ABC, ZZZ, TOTAL
		t.Fatalf("export has %d lines, want 4:\n%s", len(lines), buf.String())
	}
	if lines[0] != "ticker,description,quantity,purchase_price,fees,total_cost,current_price,market_value,gain_loss,gain_loss_pct" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "ABC,test co,10,5,1,51,6,60,9,17.65%" {
		t.Errorf("ABC row = %q", lines[1])
	}
	// unavailable price leaves the derived cells empty, never zero
	if lines[2] != "ZZZ,,5,10,0,50,,,," {
		t.Errorf("ZZZ row = %q", lines[2])
	}
	if !strings.HasPrefix(lines[3], "TOTAL,") {
		t.Errorf("summary row = %q", lines[3])
	}
	if !strings.Contains(lines[3], ",51,") || !strings.Contains(lines[3], ",60,") {
		t.Errorf("summary row totals = %q, want cost 51 and value 60", lines[3])
	}
}

func TestImportPositions_RoundTrip(t *testing.T) {
	results, summary := exportScenario(t)

	var buf bytes.Buffer
	if err := ExportCSV(&buf, results, summary); err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}

	positions, err := ImportPositions(&buf, "USD")
	if err != nil {
		t.Fatalf("ImportPositions() error = %v", err)
	}
	if len(positions) != 2 {
		t.Fatalf("imported %d positions, want 2", len(positions))
	}

	for i, r := range results {
		got, want := positions[i], r.Position
		if got.Ticker != want.Ticker || got.Description != want.Description {
			t.Errorf("position %d = %q/%q, want %q/%q", i, got.Ticker, got.Description, want.Ticker, want.Description)
		}
		if !got.Quantity.Equal(want.Quantity) {
			t.Errorf("position %d quantity = %s, want %s", i, got.Quantity, want.Quantity)
		}
		if !got.PurchasePrice.Equal(want.PurchasePrice) {
			t.Errorf("position %d purchase price = %s, want %s", i, got.PurchasePrice, want.PurchasePrice)
		}
		if !got.Fees.Equal(want.Fees) {
			t.Errorf("position %d fees = %s, want %s", i, got.Fees, want.Fees)
		}
	}
}

func TestImportPositions_RejectsBadRows(t *testing.T) {
	input := "ticker,description,quantity,purchase_price,fees\nABC,x,not-a-number,5,1\n"
	if _, err := ImportPositions(strings.NewReader(input), "USD"); err == nil {
		t.Fatal("ImportPositions() accepted a malformed quantity")
	}
}

func TestImportPositions_RejectsForeignHeader(t *testing.T) {
	input := "symbol,name,qty\nABC,x,1\n"
	if _, err := ImportPositions(strings.NewReader(input), "USD"); err == nil {
		t.Fatal("ImportPositions() accepted a foreign header")
	}
}
