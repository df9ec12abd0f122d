package book

import (
	"sync"
	"time"

	"github.com/google/btree"

	"github.com/rithwikbabu/kalshi-tools/internal/domain"
)

const btreeDegree = 16

// bidLevel orders descending by price, so Ascend walks best bid first.
type bidLevel struct {
	domain.PriceLevel
}

func (l *bidLevel) Less(than btree.Item) bool {
	return l.Price > than.(*bidLevel).Price
}

// askLevel orders ascending by price, so Ascend walks best ask first.
type askLevel struct {
	domain.PriceLevel
}

func (l *askLevel) Less(than btree.Item) bool {
	return l.Price < than.(*askLevel).Price
}

// Store is the single source of truth for the current order book.
// It owns exactly one snapshot: the one for the active ticker at the
// active epoch. Each accepted update replaces the book wholesale.
//
// Epochs guard against ticker-switch races: Activate bumps the epoch,
// and Apply rejects anything tagged with a stale epoch, so a response
// that was in flight when the user switched tickers can never land.
type Store struct {
	mu       sync.RWMutex
	active   domain.Ticker
	epoch    uint64
	applied  bool
	asOf     time.Time
	bids     *btree.BTree
	asks     *btree.BTree
	onUpdate func(domain.Snapshot)
}

func NewStore() *Store {
	return &Store{
		bids: btree.New(btreeDegree),
		asks: btree.New(btreeDegree),
	}
}

// SetOnUpdate registers the change listener. It is invoked synchronously
// after every accepted update, outside the store lock, with the snapshot
// that was just applied.
func (s *Store) SetOnUpdate(fn func(domain.Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpdate = fn
}

// Activate atomically binds the store to a new ticker: the previous
// book is cleared and the epoch advances. Returns the new epoch, which
// feed deliveries for this ticker must carry.
func (s *Store) Activate(t domain.Ticker) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = t
	s.epoch++
	s.applied = false
	s.asOf = time.Time{}
	s.bids.Clear(false)
	s.asks.Clear(false)
	return s.epoch
}

// Deactivate clears the active ticker and the held book. Subsequent
// Apply calls are rejected until the next Activate.
func (s *Store) Deactivate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = ""
	s.epoch++
	s.applied = false
	s.asOf = time.Time{}
	s.bids.Clear(false)
	s.asks.Clear(false)
}

// ActiveTicker returns the ticker the store is currently bound to.
func (s *Store) ActiveTicker() (domain.Ticker, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active, s.active != ""
}

// Epoch returns the current subscription epoch.
func (s *Store) Epoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

// Apply replaces the held book with snap, but only when both the epoch
// and the snapshot's ticker still match the active subscription. Late
// responses for a superseded ticker fail both checks and are dropped.
// Returns whether the snapshot was accepted.
func (s *Store) Apply(epoch uint64, snap *domain.Snapshot) bool {
	s.mu.Lock()

	if epoch != s.epoch || s.active == "" || snap.Ticker != s.active {
		s.mu.Unlock()
		return false
	}

	s.bids.Clear(false)
	s.asks.Clear(false)
	for _, lv := range snap.Bids {
		s.bids.ReplaceOrInsert(&bidLevel{lv})
	}
	for _, lv := range snap.Asks {
		s.asks.ReplaceOrInsert(&askLevel{lv})
	}
	s.applied = true
	s.asOf = snap.AsOf

	current := s.materialize()
	fn := s.onUpdate
	s.mu.Unlock()

	if fn != nil {
		fn(current)
	}
	return true
}

// Current returns the held snapshot. The second return is false until
// the first accepted update after Activate; a returned snapshot is
// always internally consistent (never a partial replace).
func (s *Store) Current() (domain.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.applied {
		return domain.Snapshot{Ticker: s.active}, false
	}
	return s.materialize(), true
}

// LastUpdate returns the AsOf of the most recent accepted snapshot.
func (s *Store) LastUpdate() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.asOf
}

// materialize flattens the trees into ordered slices. Caller holds mu.
func (s *Store) materialize() domain.Snapshot {
	snap := domain.Snapshot{
		Ticker: s.active,
		Bids:   make([]domain.PriceLevel, 0, s.bids.Len()),
		Asks:   make([]domain.PriceLevel, 0, s.asks.Len()),
		AsOf:   s.asOf,
	}
	s.bids.Ascend(func(item btree.Item) bool {
		snap.Bids = append(snap.Bids, item.(*bidLevel).PriceLevel)
		return true
	})
	s.asks.Ascend(func(item btree.Item) bool {
		snap.Asks = append(snap.Asks, item.(*askLevel).PriceLevel)
		return true
	})
	return snap
}
