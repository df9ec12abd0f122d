package feed

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rithwikbabu/kalshi-tools/internal/domain"
	"github.com/rithwikbabu/kalshi-tools/internal/event"
)

// fakeSource serves canned snapshots or errors, optionally delaying to
// simulate a slow round trip.
type fakeSource struct {
	mu    sync.Mutex
	calls int
	delay time.Duration
	err   error
}

func (f *fakeSource) GetOrderbook(ctx context.Context, ticker domain.Ticker) (*domain.Snapshot, error) {
	f.mu.Lock()
	f.calls++
	delay, err := f.delay, f.err
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return &domain.Snapshot{
		Ticker: ticker,
		Bids:   []domain.PriceLevel{{Price: 49, Size: 10, Side: domain.SideBid}},
		AsOf:   time.Now(),
	}, nil
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestPoller_DeliversTaggedSnapshots(t *testing.T) {
	src := &fakeSource{}
	inbox := make(chan event.Event, 8)
	p := NewPoller(src, 250*time.Millisecond)

	sub := p.Subscribe(context.Background(), "MKT-A", 7, inbox)
	defer sub.Stop()

	select {
	case ev := <-inbox:
		snap, ok := ev.(event.BookSnapshotEvent)
		if !ok {
			t.Fatalf("event = %T, want BookSnapshotEvent", ev)
		}
		if snap.GetEpoch() != 7 {
			t.Errorf("epoch = %d, want 7", snap.GetEpoch())
		}
		if snap.Snapshot.Ticker != "MKT-A" {
			t.Errorf("ticker = %s", snap.Snapshot.Ticker)
		}
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
	}
}

func TestPoller_ErrorsSurfaceAndLoopSurvives(t *testing.T) {
	src := &fakeSource{err: errors.New("boom")}
	inbox := make(chan event.Event, 8)
	p := NewPoller(src, 250*time.Millisecond)

	sub := p.Subscribe(context.Background(), "MKT-A", 1, inbox)
	defer sub.Stop()

	select {
	case ev := <-inbox:
		fe, ok := ev.(event.FeedErrorEvent)
		if !ok {
			t.Fatalf("event = %T, want FeedErrorEvent", ev)
		}
		if fe.Err == nil {
			t.Error("feed error must carry the cause")
		}
	case <-time.After(time.Second):
		t.Fatal("no error event delivered")
	}

	// Clear the failure: the next cycle recovers without restarting.
	src.mu.Lock()
	src.err = nil
	src.mu.Unlock()

	deadline := time.After(3 * time.Second)
	for {
		select {
		case ev := <-inbox:
			if _, ok := ev.(event.BookSnapshotEvent); ok {
				return
			}
		case <-deadline:
			t.Fatal("poller never recovered after errors")
		}
	}
}

func TestPoller_StopGuaranteesNoFurtherDelivery(t *testing.T) {
	// A slow round trip is in flight when Stop is called.
	src := &fakeSource{delay: 100 * time.Millisecond}
	inbox := make(chan event.Event, 8)
	p := NewPoller(src, 250*time.Millisecond)

	sub := p.Subscribe(context.Background(), "MKT-A", 1, inbox)
	time.Sleep(20 * time.Millisecond) // let the first fetch start
	sub.Stop()

	// Drain anything sent before Stop returned, then assert silence.
	for {
		select {
		case <-inbox:
			continue
		default:
		}
		break
	}

	select {
	case ev := <-inbox:
		t.Fatalf("delivery after Stop returned: %+v", ev)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestPoller_EnforcesIntervalFloor(t *testing.T) {
	src := &fakeSource{}
	inbox := make(chan event.Event, 64)
	p := NewPoller(src, time.Millisecond) // absurdly aggressive

	sub := p.Subscribe(context.Background(), "MKT-A", 1, inbox)
	time.Sleep(120 * time.Millisecond)
	sub.Stop()

	// With the 250ms floor only the immediate fetch fits in 120ms.
	if got := src.callCount(); got > 2 {
		t.Errorf("floor not enforced: %d fetches in 120ms", got)
	}
}
