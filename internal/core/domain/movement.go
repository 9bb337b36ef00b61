package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type MovementKind string

const (
	MovementIn  MovementKind = "in"
	MovementOut MovementKind = "out"
)

// ParseMovementKind accepts the English and Portuguese spellings used by operators.
func ParseMovementKind(s string) (MovementKind, error) {
	switch Fold(strings.TrimSpace(s)) {
	case "", "in", "entrada", "add", "+":
		return MovementIn, nil
	case "out", "saida", "remove", "-":
		return MovementOut, nil
	default:
		return "", fmt.Errorf("%w: unknown movement kind %q", ErrInvalidRequest, s)
	}
}

// Signed turns a positive quantity into the delta applied to stock.
func (k MovementKind) Signed(quantity decimal.Decimal) decimal.Decimal {
	if k == MovementOut {
		return quantity.Neg()
	}
	return quantity
}

type Movement struct {
	ID          string          `json:"id"`
	RequestID   string          `json:"request_id,omitempty"`
	Product     string          `json:"product"`
	Kind        MovementKind    `json:"kind"`
	Quantity    decimal.Decimal `json:"quantity"`
	Delta       decimal.Decimal `json:"delta"`
	StockBefore decimal.Decimal `json:"stock_before"`
	StockAfter  decimal.Decimal `json:"stock_after"`
	CreatedAt   time.Time       `json:"created_at"`
}

type StockChange struct {
	Index  int
	Before decimal.Decimal
	After  decimal.Decimal
}

// ApplyDelta returns a copy of t with delta added to the stock of the first
// row named product. t itself is never modified.
func ApplyDelta(t Table, product string, delta decimal.Decimal) (Table, StockChange, error) {
	idx, ok := t.Find(product)
	if !ok {
		return t, StockChange{}, fmt.Errorf("%w: %s", ErrProductNotFound, product)
	}
	if !t.Has(FieldStockQty) {
		return t, StockChange{}, ErrStockColumnMissing
	}

	current := t.Rows[idx].StockQty
	before := decimal.Zero
	if current.Valid {
		before = current.Decimal
	}
	if delta.IsNegative() {
		if !current.Valid || delta.Abs().GreaterThan(before) {
			return t, StockChange{}, fmt.Errorf("%w: %s has %s, requested %s",
				ErrInsufficientStock, product, before.String(), delta.Abs().String())
		}
	}

	after := before.Add(delta)
	out := t.Clone()
	out.Rows[idx].StockQty = decimal.NullDecimal{Decimal: after, Valid: true}

	return out, StockChange{Index: idx, Before: before, After: after}, nil
}
