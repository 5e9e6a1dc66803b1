package tracker

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// This file contains the position file format. It should remain human
// readable, a single file, and forward-compatible: each line is a
// self-describing JSON object, so a reader can ignore fields it does not
// know about.

// jposition is the readable version of a position on the wire.
type jposition struct {
	ID            string          `json:"id"`
	Ticker        string          `json:"ticker"`
	Description   string          `json:"description"`
	Quantity      decimal.Decimal `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Fees          decimal.Decimal `json:"fees"`
	Currency      string          `json:"currency"`
	Added         time.Time       `json:"added"`
}

// EncodeStore writes all positions of 's' to 'w' as JSONL, one position per
// line, fields in a stable order.
func EncodeStore(w io.Writer, s *Store) error {
	for _, p := range s.Positions() {
		var jw jsonObjectWriter
		jw.Append("id", p.ID)
		jw.Append("ticker", p.Ticker)
		jw.Optional("description", p.Description)
		jw.Append("quantity", p.Quantity)
		jw.Append("purchase_price", p.PurchasePrice.Amount())
		jw.Append("fees", p.Fees.Amount())
		jw.Optional("currency", p.PurchasePrice.Currency())
		jw.Append("added", p.Added.Format(time.RFC3339))

		data, err := jw.MarshalJSON()
		if err != nil {
			return fmt.Errorf("cannot marshal position %q: %w", p.Ticker, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("cannot write position file: %w", err)
		}
	}
	return nil
}

// DecodeStore reads a JSONL stream of positions from 'r' and returns a
// Store. Malformed lines are rejected with their content, not silently
// skipped.
func DecodeStore(r io.Reader) (*Store, error) {
	s := NewStore()
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var jp jposition
		if err := json.Unmarshal(raw, &jp); err != nil {
			return nil, fmt.Errorf("cannot parse position file line %d: %q: %w", line, string(raw), err)
		}
		p := Position{
			ID:            jp.ID,
			Ticker:        NormalizeTicker(jp.Ticker),
			Description:   jp.Description,
			Quantity:      Q(jp.Quantity),
			PurchasePrice: M(jp.PurchasePrice, jp.Currency),
			Fees:          M(jp.Fees, jp.Currency),
			Added:         jp.Added,
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("position file line %d: %w", line, err)
		}
		if err := s.Add(p); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read position file: %w", err)
	}
	return s, nil
}
