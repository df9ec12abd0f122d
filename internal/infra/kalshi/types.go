package kalshi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rithwikbabu/kalshi-tools/internal/domain"
	"github.com/rithwikbabu/kalshi-tools/pkg/quant"
)

// ErrMalformed is wrapped by every response-shape failure. The feed
// treats it exactly like a transport error: skip the cycle, retry on
// the next tick.
var ErrMalformed = errors.New("kalshi: malformed orderbook response")

// orderbookEnvelope mirrors GET /markets/{ticker}/orderbook.
// Levels arrive as [price, qty] pairs; yes levels are YES bids at
// price, no levels are NO bids which read as YES asks at 100-price.
// json.Number keeps integer cents exact at the boundary.
type orderbookEnvelope struct {
	Orderbook struct {
		Yes [][]json.Number `json:"yes"`
		No  [][]json.Number `json:"no"`
	} `json:"orderbook"`
}

// parseSnapshot converts a raw response body into a normalized snapshot.
// Entries outside the 0..100 price axis are dropped; entries that map to
// the same price aggregate by summing size, restoring the
// one-level-per-price invariant. A missing side means an empty side.
func parseSnapshot(ticker domain.Ticker, body []byte, asOf time.Time) (*domain.Snapshot, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var env orderbookEnvelope
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	bidBins := make(map[quant.PriceCents]quant.Qty)
	askBins := make(map[quant.PriceCents]quant.Qty)

	for _, pair := range env.Orderbook.Yes {
		price, size, err := parsePair(pair)
		if err != nil {
			return nil, err
		}
		if !price.Valid() {
			continue
		}
		bidBins[price] += size
	}
	for _, pair := range env.Orderbook.No {
		price, size, err := parsePair(pair)
		if err != nil {
			return nil, err
		}
		if !price.Valid() {
			continue
		}
		askBins[price.Mirror()] += size
	}

	snap := &domain.Snapshot{Ticker: ticker, AsOf: asOf}
	for price, size := range bidBins {
		snap.Bids = append(snap.Bids, domain.PriceLevel{Price: price, Size: size, Side: domain.SideBid})
	}
	for price, size := range askBins {
		snap.Asks = append(snap.Asks, domain.PriceLevel{Price: price, Size: size, Side: domain.SideAsk})
	}
	sort.Slice(snap.Bids, func(i, j int) bool { return snap.Bids[i].Price > snap.Bids[j].Price })
	sort.Slice(snap.Asks, func(i, j int) bool { return snap.Asks[i].Price < snap.Asks[j].Price })

	return snap, nil
}

func parsePair(pair []json.Number) (quant.PriceCents, quant.Qty, error) {
	if len(pair) != 2 {
		return 0, 0, fmt.Errorf("%w: level has %d elements, want 2", ErrMalformed, len(pair))
	}
	// Range violations are filtered by the caller; anything that is not
	// an integer at all means the contract changed under us.
	price, err := pair[0].Int64()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: price %q", ErrMalformed, pair[0].String())
	}
	size, err := quant.ParseQty(pair[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return quant.PriceCents(price), size, nil
}
