package quant

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// PriceCents represents a Kalshi contract price in whole cents.
// Binary-market prices are discrete: valid values are 0..100 cents,
// i.e. $0.00 to $1.00 per contract.
type PriceCents int64

// Qty represents a number of contracts. Always whole, never negative.
type Qty int64

const (
	// MaxPriceCents is the upper bound of the Kalshi price axis.
	MaxPriceCents PriceCents = 100

	centsPerDollar = 100
)

// ParsePriceCents converts a json.Number from the wire to PriceCents.
// Note: Only used at the boundary. Internal logic uses PriceCents directly.
func ParsePriceCents(n json.Number) (PriceCents, error) {
	v, err := n.Int64()
	if err != nil {
		return 0, fmt.Errorf("price %q is not an integer: %w", n.String(), err)
	}
	p := PriceCents(v)
	if p < 0 || p > MaxPriceCents {
		return 0, fmt.Errorf("price %d out of range [0, %d]", v, MaxPriceCents)
	}
	return p, nil
}

// ParseQty converts a json.Number from the wire to Qty.
func ParseQty(n json.Number) (Qty, error) {
	v, err := n.Int64()
	if err != nil {
		return 0, fmt.Errorf("qty %q is not an integer: %w", n.String(), err)
	}
	if v < 0 {
		return 0, fmt.Errorf("qty %d is negative", v)
	}
	return Qty(v), nil
}

// Mirror returns the same level expressed on the opposite side of a
// binary market: a resting NO bid at p is a YES ask at 100-p.
func (p PriceCents) Mirror() PriceCents {
	return MaxPriceCents - p
}

// Valid reports whether the price lies on the Kalshi axis.
func (p PriceCents) Valid() bool {
	return p >= 0 && p <= MaxPriceCents
}

// Dollars converts the price to a decimal dollar amount.
func (p PriceCents) Dollars() decimal.Decimal {
	return decimal.New(int64(p), -2)
}

func (p PriceCents) String() string {
	return fmt.Sprintf("%dc", int64(p))
}

func (q Qty) String() string {
	return fmt.Sprintf("%d", int64(q))
}

// Notional returns price * qty as a decimal dollar amount.
func Notional(p PriceCents, q Qty) decimal.Decimal {
	return p.Dollars().Mul(decimal.NewFromInt(int64(q)))
}
