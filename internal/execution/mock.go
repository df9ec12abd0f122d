package execution

import (
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rithwikbabu/kalshi-tools/internal/domain"
	"github.com/rithwikbabu/kalshi-tools/internal/infra"
	"github.com/rithwikbabu/kalshi-tools/pkg/quant"
)

// receiptCap bounds the in-memory receipt ring.
const receiptCap = 50

// MockSimulator is the only Simulator. The struct owns no HTTP client
// and imports no transport, so the no-network-write guarantee is
// structural, not behavioral.
//
// Fill rule (deterministic, display-only): the order is "filled" when
// the requested quantity fits inside the level's resting size,
// otherwise "placed". The resting size itself is never decremented;
// this is a viewer, not a matching engine.
type MockSimulator struct {
	mu       sync.Mutex
	receipts []domain.MockOrder
	notional decimal.Decimal // running simulated notional, dollars
	clock    func() time.Time
}

func NewMockSimulator() *MockSimulator {
	return &MockSimulator{clock: time.Now}
}

func (m *MockSimulator) Simulate(level domain.PriceLevel, qty quant.Qty) domain.MockOrder {
	status := domain.MockPlaced
	if qty <= level.Size {
		status = domain.MockFilled
	}

	order := domain.MockOrder{
		Side:     level.Side,
		Price:    level.Price,
		Size:     qty,
		Status:   status,
		Notional: quant.Notional(level.Price, qty),
		PlacedAt: m.clock(),
	}

	m.mu.Lock()
	m.receipts = append([]domain.MockOrder{order}, m.receipts...)
	if len(m.receipts) > receiptCap {
		m.receipts = m.receipts[:receiptCap]
	}
	m.notional = m.notional.Add(order.Notional)
	m.mu.Unlock()

	infra.MockOrdersTotal.WithLabelValues(string(status)).Inc()
	slog.Info("SIMULATED ORDER",
		slog.String("side", level.Side.String()),
		slog.String("price", level.Price.String()),
		slog.Int64("qty", int64(qty)),
		slog.String("status", string(status)),
	)
	return order
}

func (m *MockSimulator) Recent(n int) []domain.MockOrder {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n > len(m.receipts) {
		n = len(m.receipts)
	}
	out := make([]domain.MockOrder, n)
	copy(out, m.receipts[:n])
	return out
}

// SimulatedNotional returns the running dollar total of every simulated
// order this session. Display only, like everything else here.
func (m *MockSimulator) SimulatedNotional() decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notional
}
