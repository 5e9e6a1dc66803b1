package tracker

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Position is a user's holding of one instrument.
//
// Ticker is normalized to upper case on creation and is immutable afterwards:
// changing the instrument of a position means deleting it and adding a new
// one, so a cache key never silently changes identity.
type Position struct {
	ID            string
	Ticker        string
	Description   string
	Quantity      Quantity
	PurchasePrice Money // price per unit at acquisition
	Fees          Money // one-time transaction cost
	Added         time.Time
}

// NewPosition validates the given fields and returns a new position with a
// fresh id. The ticker is upper-cased; no state is mutated on error.
func NewPosition(ticker, description string, quantity Quantity, purchasePrice, fees Money) (Position, error) {
	p := Position{
		ID:            uuid.NewString(),
		Ticker:        NormalizeTicker(ticker),
		Description:   description,
		Quantity:      quantity,
		PurchasePrice: purchasePrice,
		Fees:          fees,
		Added:         time.Now(),
	}
	if err := p.Validate(); err != nil {
		return Position{}, err
	}
	return p, nil
}

// NormalizeTicker returns the canonical form of a user-entered ticker.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// Validate checks the position constraints and returns a ValidationError
// listing every failing field, or nil.
func (p Position) Validate() error {
	errs := &ValidationError{}
	if p.Ticker == "" {
		errs.add("ticker must not be empty")
	}
	if !p.Quantity.IsPositive() {
		errs.add("quantity must be positive, got %s", p.Quantity)
	}
	if p.PurchasePrice.IsNegative() {
		errs.add("purchase price must not be negative, got %s", p.PurchasePrice)
	}
	if p.Fees.IsNegative() {
		errs.add("fees must not be negative, got %s", p.Fees)
	}
	return errs.orNil()
}

// TotalCost returns the cost basis of the position:
// quantity * purchase price + fees, exactly.
func (p Position) TotalCost() Money {
	return p.PurchasePrice.Mul(p.Quantity).Add(p.Fees)
}
