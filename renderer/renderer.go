// Package renderer turns valuation results into markdown for display.
// All accounting-format concerns (parenthesized losses, N/A for
// unavailable prices) live here and in the Money helpers, never in the
// valuation engine.
package renderer

import (
	"bytes"
	"fmt"

	tracker "github.com/gwally9/investment-tracker"
	md "github.com/nao1215/markdown"
)

// notAvailable is rendered for every figure derived from an Unavailable
// price. Rendering zero instead would silently understate gains or losses.
const notAvailable = "N/A"

// ValuationMarkdown renders the full portfolio table plus the summary
// header to a markdown string.
func ValuationMarkdown(results []tracker.ValuationResult, summary tracker.Summary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio")
	writeSummary(doc, summary)

	table := md.TableSet{
		Header: []string{"Ticker", "Description", "Quantity", "Purchase Price", "Fees", "Total Cost", "Current Price", "Market Value", "Gain/Loss", "Gain/Loss %"},
	}
	for _, r := range results {
		table.Rows = append(table.Rows, valuationRow(r))
	}
	doc.Table(table)

	if stale(results) {
		doc.PlainText("`*` price is stale: the last refresh attempt failed.")
	}
	return doc.String()
}

// SummaryMarkdown renders only the portfolio summary header.
func SummaryMarkdown(summary tracker.Summary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Portfolio Summary")
	writeSummary(doc, summary)
	return doc.String()
}

func writeSummary(doc *md.Markdown, summary tracker.Summary) {
	doc.PlainText(fmt.Sprintf("Total Cost: %s", summary.TotalCost))
	doc.PlainText(fmt.Sprintf("Market Value: %s", summary.TotalMarketValue))
	pct := ""
	if summary.PctValid {
		pct = fmt.Sprintf(" (%s)", summary.GainLossPct.SignedString())
	}
	doc.PlainText(fmt.Sprintf("Gain/Loss: %s%s", summary.GainLoss.Accounting(), pct))
	if summary.Excluded > 0 {
		doc.PlainText(fmt.Sprintf("%d position(s) excluded from totals: price unavailable.", summary.Excluded))
	}
}

func valuationRow(r tracker.ValuationResult) []string {
	p := r.Position
	row := []string{
		p.Ticker,
		p.Description,
		p.Quantity.String(),
		p.PurchasePrice.String(),
		p.Fees.String(),
		p.TotalCost().String(),
		notAvailable,
		notAvailable,
		notAvailable,
		notAvailable,
	}
	if !r.Priced {
		return row
	}
	price := r.CurrentPrice.String()
	if r.Stale {
		price += "*"
	}
	row[6] = price
	row[7] = r.MarketValue.String()
	row[8] = r.GainLoss.Accounting()
	if r.PctValid {
		row[9] = r.GainLossPct.SignedString()
	}
	return row
}

func stale(results []tracker.ValuationResult) bool {
	for _, r := range results {
		if r.Stale {
			return true
		}
	}
	return false
}
