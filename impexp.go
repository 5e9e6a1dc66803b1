package tracker

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// this file contains the CSV export of valuation results and the matching
// position import. The column order is part of the contract: tools
// downstream rely on it.

// csvHeader is the exact column order of the export.
var csvHeader = []string{
	"ticker",
	"description",
	"quantity",
	"purchase_price",
	"fees",
	"total_cost",
	"current_price",
	"market_value",
	"gain_loss",
	"gain_loss_pct",
}

// ExportCSV writes the valuation results and a trailing summary row to 'w'.
// Cells derived from an Unavailable price are left empty, never zero.
func ExportCSV(w io.Writer, results []ValuationResult, summary Summary) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, r := range results {
		p := r.Position
		record := []string{
			p.Ticker,
			p.Description,
			p.Quantity.String(),
			p.PurchasePrice.Amount().String(),
			p.Fees.Amount().String(),
			p.TotalCost().Amount().String(),
			"", "", "", "",
		}
		if r.Priced {
			record[6] = r.CurrentPrice.Amount().String()
			record[7] = r.MarketValue.Amount().String()
			record[8] = r.GainLoss.Amount().String()
			if r.PctValid {
				record[9] = r.GainLossPct.String()
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record for %q: %w", p.Ticker, err)
		}
	}

	total := []string{
		"TOTAL", "", "", "", "",
		summary.TotalCost.Amount().String(),
		"",
		summary.TotalMarketValue.Amount().String(),
		summary.GainLoss.Amount().String(),
		"",
	}
	if summary.PctValid {
		total[9] = summary.GainLossPct.String()
	}
	if err := cw.Write(total); err != nil {
		return fmt.Errorf("write csv summary row: %w", err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// ImportPositions reads positions back from a CSV export (or any file with
// the same leading columns). Derived columns and the TOTAL row are ignored;
// malformed rows are rejected with their row number.
func ImportPositions(r io.Reader, currency string) ([]Position, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv is empty")
	}
	if err := checkHeader(records[0]); err != nil {
		return nil, err
	}

	var positions []Position
	for i, row := range records[1:] {
		if len(row) > 0 && row[0] == "TOTAL" {
			continue
		}
		if len(row) < 5 {
			return nil, fmt.Errorf("csv row %d: expected at least 5 columns, got %d", i+2, len(row))
		}
		quantity, err := decimal.NewFromString(row[2])
		if err != nil {
			return nil, fmt.Errorf("csv row %d: bad quantity %q: %w", i+2, row[2], err)
		}
		price, err := decimal.NewFromString(row[3])
		if err != nil {
			return nil, fmt.Errorf("csv row %d: bad purchase_price %q: %w", i+2, row[3], err)
		}
		fees, err := decimal.NewFromString(row[4])
		if err != nil {
			return nil, fmt.Errorf("csv row %d: bad fees %q: %w", i+2, row[4], err)
		}
		p, err := NewPosition(row[0], row[1], Q(quantity), M(price, currency), M(fees, currency))
		if err != nil {
			return nil, fmt.Errorf("csv row %d: %w", i+2, err)
		}
		positions = append(positions, p)
	}
	return positions, nil
}

func checkHeader(header []string) error {
	if len(header) < 5 {
		return fmt.Errorf("csv header has %d columns, expected at least 5", len(header))
	}
	for i, want := range csvHeader[:5] {
		if header[i] != want {
			return fmt.Errorf("csv header column %d is %q, expected %q", i+1, header[i], want)
		}
	}
	return nil
}
