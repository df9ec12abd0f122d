package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rithwikbabu/kalshi-tools/pkg/quant"
)

// MockStatus is the deterministic outcome label of a simulated order.
type MockStatus string

const (
	// MockFilled: the requested quantity fit inside the resting size.
	MockFilled MockStatus = "filled"
	// MockPlaced: the requested quantity exceeded the resting size, so
	// a real order would have rested (fully or partially) on the book.
	MockPlaced MockStatus = "placed"
)

// MockOrder is a simulated, display-only order result. It is built on
// a key press, shown, and discarded; it is never persisted and never
// leaves the process.
type MockOrder struct {
	Side     Side
	Price    quant.PriceCents
	Size     quant.Qty
	Status   MockStatus
	Notional decimal.Decimal // price * size, in dollars
	PlacedAt time.Time
}

// Summary renders the receipt line shown in the footer,
// e.g. "14:03:22 — BID 5 @ 49c ($2.45) filled".
func (m MockOrder) Summary() string {
	return fmt.Sprintf("%s — %s %d @ %s ($%s) %s",
		m.PlacedAt.Format("15:04:05"), m.Side, int64(m.Size), m.Price,
		m.Notional.StringFixed(2), m.Status)
}
