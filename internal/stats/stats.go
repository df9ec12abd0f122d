// Package stats derives the header-line figures from a book snapshot.
package stats

import (
	"github.com/shopspring/decimal"

	"github.com/rithwikbabu/kalshi-tools/internal/domain"
	"github.com/rithwikbabu/kalshi-tools/pkg/quant"
	"github.com/rithwikbabu/kalshi-tools/pkg/safe"
)

// BookStats summarizes one snapshot for display.
type BookStats struct {
	BestBid     quant.PriceCents
	BestAsk     quant.PriceCents
	HasBid      bool
	HasAsk      bool
	SpreadCents int64 // valid when HasBid && HasAsk
	Mid         decimal.Decimal
	BidDepth    quant.Qty // total contracts resting on the bid side
	AskDepth    quant.Qty
	// Imbalance = bidDepth / (bidDepth + askDepth), 0..1.
	// 0.5 is balanced; zero total depth reports 0.5 rather than NaN.
	Imbalance decimal.Decimal
}

// Compute derives stats for snap. Safe on empty and one-sided books.
func Compute(snap *domain.Snapshot) BookStats {
	st := BookStats{Imbalance: decimal.NewFromFloat(0.5)}

	if bid, ok := snap.BestBid(); ok {
		st.BestBid = bid.Price
		st.HasBid = true
	}
	if ask, ok := snap.BestAsk(); ok {
		st.BestAsk = ask.Price
		st.HasAsk = true
	}
	if st.HasBid && st.HasAsk {
		st.SpreadCents = safe.Sub(int64(st.BestAsk), int64(st.BestBid))
		// Mid in dollars: (bid + ask) / 2 cents.
		sum := safe.Add(int64(st.BestBid), int64(st.BestAsk))
		st.Mid = decimal.New(sum, -2).Div(decimal.NewFromInt(2))
	}

	var bidDepth, askDepth int64
	for _, lv := range snap.Bids {
		bidDepth = safe.Add(bidDepth, int64(lv.Size))
	}
	for _, lv := range snap.Asks {
		askDepth = safe.Add(askDepth, int64(lv.Size))
	}
	st.BidDepth = quant.Qty(bidDepth)
	st.AskDepth = quant.Qty(askDepth)

	total := safe.Add(bidDepth, askDepth)
	if total > 0 {
		st.Imbalance = decimal.NewFromInt(bidDepth).Div(decimal.NewFromInt(total))
	}
	return st
}
