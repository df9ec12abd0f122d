package execution

import (
	"testing"
	"time"

	"github.com/rithwikbabu/kalshi-tools/internal/domain"
	"github.com/rithwikbabu/kalshi-tools/pkg/quant"
)

func fixedClock() time.Time {
	return time.Date(2024, 12, 31, 14, 3, 22, 0, time.UTC)
}

func TestMockSimulator_FillRule(t *testing.T) {
	level := domain.PriceLevel{Price: 45, Size: 120, Side: domain.SideAsk}

	tests := []struct {
		name string
		qty  int64
		want domain.MockStatus
	}{
		{"Fits Inside Resting Size", 5, domain.MockFilled},
		{"Exactly Resting Size", 120, domain.MockFilled},
		{"Exceeds Resting Size", 121, domain.MockPlaced},
		{"Zero Resting Size", 1, domain.MockPlaced},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := NewMockSimulator()
			sim.clock = fixedClock

			lv := level
			if tt.name == "Zero Resting Size" {
				lv.Size = 0
			}
			got := sim.Simulate(lv, quant.Qty(tt.qty))

			if got.Status != tt.want {
				t.Errorf("status = %s, want %s", got.Status, tt.want)
			}
			if got.Side != lv.Side || got.Price != lv.Price {
				t.Errorf("order = %+v, must echo the clicked level", got)
			}
			if lv.Size != level.Size && tt.name != "Zero Resting Size" {
				t.Error("resting size must never be decremented")
			}
		})
	}
}

func TestMockSimulator_Deterministic(t *testing.T) {
	sim := NewMockSimulator()
	sim.clock = fixedClock
	level := domain.PriceLevel{Price: 45, Size: 120, Side: domain.SideAsk}

	a := sim.Simulate(level, 5)
	b := sim.Simulate(level, 5)
	if a.Side != b.Side || a.Price != b.Price || a.Size != b.Size ||
		a.Status != b.Status || !a.Notional.Equal(b.Notional) || !a.PlacedAt.Equal(b.PlacedAt) {
		t.Errorf("same input must give the same order: %+v vs %+v", a, b)
	}
	if a.Notional.StringFixed(2) != "2.25" {
		t.Errorf("notional = %s, want 2.25", a.Notional.StringFixed(2))
	}
}

func TestMockSimulator_ReceiptRing(t *testing.T) {
	sim := NewMockSimulator()
	sim.clock = fixedClock
	level := domain.PriceLevel{Price: 10, Size: 1, Side: domain.SideBid}

	for i := 0; i < receiptCap+10; i++ {
		sim.Simulate(level, 1)
	}

	if got := len(sim.Recent(receiptCap + 10)); got != receiptCap {
		t.Errorf("ring holds %d receipts, cap is %d", got, receiptCap)
	}
	if got := len(sim.Recent(4)); got != 4 {
		t.Errorf("Recent(4) returned %d", got)
	}
}

func TestMockSimulator_NotionalTally(t *testing.T) {
	sim := NewMockSimulator()
	sim.clock = fixedClock

	sim.Simulate(domain.PriceLevel{Price: 50, Size: 10, Side: domain.SideBid}, 2) // $1.00
	sim.Simulate(domain.PriceLevel{Price: 25, Size: 10, Side: domain.SideAsk}, 4) // $1.00

	if got := sim.SimulatedNotional().StringFixed(2); got != "2.00" {
		t.Errorf("notional tally = %s, want 2.00", got)
	}
}
