package domain

import (
	"fmt"
	"time"

	"github.com/rithwikbabu/kalshi-tools/pkg/quant"
	"github.com/rithwikbabu/kalshi-tools/pkg/safe"
)

// Side marks which half of the book a level rests on.
type Side uint8

const (
	SideBid Side = iota + 1
	SideAsk
)

func (s Side) String() string {
	switch s {
	case SideBid:
		return "BID"
	case SideAsk:
		return "ASK"
	default:
		return "UNKNOWN"
	}
}

// Opposite returns the other side of the book.
func (s Side) Opposite() Side {
	if s == SideBid {
		return SideAsk
	}
	return SideBid
}

// PriceLevel is one resting price level of the book.
type PriceLevel struct {
	Price quant.PriceCents `json:"price"`
	Size  quant.Qty        `json:"size"`
	Side  Side             `json:"side"`
}

// Snapshot is a complete, point-in-time view of one market's book.
// Bids are ordered descending by price, asks ascending. A snapshot
// fully replaces its predecessor; there is no incremental merge.
type Snapshot struct {
	Ticker Ticker       `json:"ticker"`
	Bids   []PriceLevel `json:"bids"`
	Asks   []PriceLevel `json:"asks"`
	AsOf   time.Time    `json:"as_of"`
}

// IsEmpty reports whether the book has no resting levels on either side.
func (s *Snapshot) IsEmpty() bool {
	return len(s.Bids) == 0 && len(s.Asks) == 0
}

// BestBid returns the highest-priced bid level, if any.
func (s *Snapshot) BestBid() (PriceLevel, bool) {
	if len(s.Bids) == 0 {
		return PriceLevel{}, false
	}
	return s.Bids[0], true
}

// BestAsk returns the lowest-priced ask level, if any.
func (s *Snapshot) BestAsk() (PriceLevel, bool) {
	if len(s.Asks) == 0 {
		return PriceLevel{}, false
	}
	return s.Asks[0], true
}

// SpreadCents returns best ask minus best bid. The second return is
// false when either side is empty.
func (s *Snapshot) SpreadCents() (int64, bool) {
	bid, okB := s.BestBid()
	ask, okA := s.BestAsk()
	if !okB || !okA {
		return 0, false
	}
	return safe.Sub(int64(ask.Price), int64(bid.Price)), true
}

// LevelAt returns the resting level at (price, side), if present.
func (s *Snapshot) LevelAt(price quant.PriceCents, side Side) (PriceLevel, bool) {
	levels := s.Bids
	if side == SideAsk {
		levels = s.Asks
	}
	for _, lv := range levels {
		if lv.Price == price {
			return lv, true
		}
	}
	return PriceLevel{}, false
}

// Validate checks the snapshot's ordering invariants: bids strictly
// descending, asks strictly ascending, sizes non-negative, sides
// consistent. Strict ordering also implies per-side price uniqueness.
// The source is trusted not to cross the book, so that is not checked.
func (s *Snapshot) Validate() error {
	for i, lv := range s.Bids {
		if lv.Side != SideBid {
			return fmt.Errorf("bid level %d has side %s", i, lv.Side)
		}
		if lv.Size < 0 || !lv.Price.Valid() {
			return fmt.Errorf("bid level %d out of range: %+v", i, lv)
		}
		if i > 0 && lv.Price >= s.Bids[i-1].Price {
			return fmt.Errorf("bids not strictly descending at index %d", i)
		}
	}
	for i, lv := range s.Asks {
		if lv.Side != SideAsk {
			return fmt.Errorf("ask level %d has side %s", i, lv.Side)
		}
		if lv.Size < 0 || !lv.Price.Valid() {
			return fmt.Errorf("ask level %d out of range: %+v", i, lv)
		}
		if i > 0 && lv.Price <= s.Asks[i-1].Price {
			return fmt.Errorf("asks not strictly ascending at index %d", i)
		}
	}
	return nil
}
