// Package execution simulates order placement for display.
//
// There is deliberately no real implementation and no transport in this
// package: the system's hard invariant is that no order, mock or
// otherwise, ever leaves the process.
package execution

import (
	"github.com/rithwikbabu/kalshi-tools/internal/domain"
	"github.com/rithwikbabu/kalshi-tools/pkg/quant"
)

// Simulator computes a display-only order result from a clicked level.
type Simulator interface {
	// Simulate builds the mock order for qty contracts against level.
	// It never mutates the book and never performs I/O.
	Simulate(level domain.PriceLevel, qty quant.Qty) domain.MockOrder

	// Recent returns up to n most recent receipts, newest first.
	Recent(n int) []domain.MockOrder
}
