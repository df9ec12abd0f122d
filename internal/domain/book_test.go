package domain

import (
	"testing"
	"time"

	"github.com/rithwikbabu/kalshi-tools/pkg/quant"
)

func level(price int64, size int64, side Side) PriceLevel {
	return PriceLevel{Price: quant.PriceCents(price), Size: quant.Qty(size), Side: side}
}

func twoSided() *Snapshot {
	return &Snapshot{
		Ticker: "INXD-24DEC31-T5000",
		Bids:   []PriceLevel{level(49, 10, SideBid), level(48, 4, SideBid)},
		Asks:   []PriceLevel{level(51, 5, SideAsk), level(53, 8, SideAsk)},
		AsOf:   time.Now(),
	}
}

func TestSnapshot_BestAndSpread(t *testing.T) {
	snap := twoSided()

	bid, ok := snap.BestBid()
	if !ok || bid.Price != 49 || bid.Size != 10 {
		t.Errorf("BestBid = %+v, %v", bid, ok)
	}
	ask, ok := snap.BestAsk()
	if !ok || ask.Price != 51 || ask.Size != 5 {
		t.Errorf("BestAsk = %+v, %v", ask, ok)
	}
	spread, ok := snap.SpreadCents()
	if !ok || spread != 2 {
		t.Errorf("SpreadCents = %d, %v, want 2", spread, ok)
	}
}

func TestSnapshot_Empty(t *testing.T) {
	snap := &Snapshot{Ticker: "T"}
	if !snap.IsEmpty() {
		t.Error("empty snapshot should report IsEmpty")
	}
	if _, ok := snap.BestBid(); ok {
		t.Error("BestBid on empty book should be absent")
	}
	if _, ok := snap.SpreadCents(); ok {
		t.Error("SpreadCents on empty book should be absent")
	}
	if err := snap.Validate(); err != nil {
		t.Errorf("empty snapshot should validate: %v", err)
	}
}

func TestSnapshot_LevelAt(t *testing.T) {
	snap := twoSided()
	lv, ok := snap.LevelAt(51, SideAsk)
	if !ok || lv.Size != 5 {
		t.Errorf("LevelAt(51, ask) = %+v, %v", lv, ok)
	}
	if _, ok := snap.LevelAt(51, SideBid); ok {
		t.Error("LevelAt should not find ask price on the bid side")
	}
}

func TestSnapshot_Validate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		if err := twoSided().Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("Bids Not Descending", func(t *testing.T) {
		snap := twoSided()
		snap.Bids[1].Price = 49 // duplicate price
		if err := snap.Validate(); err == nil {
			t.Error("duplicate bid price should fail validation")
		}
	})

	t.Run("Asks Not Ascending", func(t *testing.T) {
		snap := twoSided()
		snap.Asks = []PriceLevel{level(53, 1, SideAsk), level(51, 1, SideAsk)}
		if err := snap.Validate(); err == nil {
			t.Error("descending asks should fail validation")
		}
	})

	t.Run("Wrong Side Tag", func(t *testing.T) {
		snap := twoSided()
		snap.Bids[0].Side = SideAsk
		if err := snap.Validate(); err == nil {
			t.Error("mis-tagged side should fail validation")
		}
	})
}

func TestParseTicker(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr bool
	}{
		{"INXD-24DEC31-T5000", false},
		{"", true},
		{"   ", true},
		{"\t\n", true},
		{" KXUSD-T1 ", false}, // content amid whitespace is content
	}

	for _, tt := range tests {
		got, err := ParseTicker(tt.raw)
		if tt.wantErr != (err != nil) {
			t.Errorf("ParseTicker(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
		}
		if err == nil && string(got) != tt.raw {
			t.Errorf("ParseTicker(%q) rewrote ticker to %q", tt.raw, got)
		}
	}
}
