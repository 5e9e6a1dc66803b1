package tracker

import (
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

const stooqBaseURL = "https://stooq.com"

// Stooq fetches current prices from the stooq.com daily quote CSV endpoint.
// It is a keyless fallback for when Yahoo is unreachable or rate limited.
type Stooq struct {
	http *resty.Client
}

// NewStooq returns a quote provider backed by stooq.com.
func NewStooq() *Stooq {
	return &Stooq{
		http: resty.New().
			SetBaseURL(stooqBaseURL).
			SetRetryCount(2),
	}
}

// FetchPrice implements QuoteProvider.
func (s *Stooq) FetchPrice(ctx context.Context, ticker string) (Money, error) {
	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"s": stooqSymbol(ticker),
			"f": "sd2t2ohlcv",
			"h": "",
			"e": "csv",
		}).
		Get("/q/l/")
	if err != nil {
		return Money{}, transientErr(ticker, err)
	}
	if resp.StatusCode() != 200 {
		return Money{}, transientErr(ticker, fmt.Errorf("stooq answered %s", resp.Status()))
	}

	price, err := parseStooqClose(resp.String())
	if err != nil {
		// stooq answers N/D fields for symbols it does not know
		return Money{}, permanentErr(ticker, err)
	}
	// stooq quotes US symbols in USD; other exchanges are out of scope here.
	return M(price, "USD"), nil
}

// stooqSymbol maps a plain ticker to stooq's symbol convention: lower case,
// with the .us suffix when no exchange suffix is present.
func stooqSymbol(ticker string) string {
	sym := strings.ToLower(ticker)
	if !strings.Contains(sym, ".") {
		sym += ".us"
	}
	return sym
}

// parseStooqClose extracts the Close column from a one-row stooq CSV answer.
func parseStooqClose(body string) (decimal.Decimal, error) {
	records, err := csv.NewReader(strings.NewReader(body)).ReadAll()
	if err != nil {
		return decimal.Zero, fmt.Errorf("cannot parse stooq csv: %w", err)
	}
	if len(records) < 2 {
		return decimal.Zero, fmt.Errorf("stooq csv has no data row")
	}
	header, row := records[0], records[1]
	for i, name := range header {
		if name != "Close" {
			continue
		}
		if i >= len(row) || row[i] == "N/D" {
			return decimal.Zero, fmt.Errorf("symbol is not quoted on stooq")
		}
		price, err := decimal.NewFromString(row[i])
		if err != nil {
			return decimal.Zero, fmt.Errorf("cannot parse stooq close %q: %w", row[i], err)
		}
		return price, nil
	}
	return decimal.Zero, fmt.Errorf("stooq csv has no Close column")
}
