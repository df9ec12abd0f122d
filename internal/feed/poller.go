package feed

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rithwikbabu/kalshi-tools/internal/domain"
	"github.com/rithwikbabu/kalshi-tools/internal/event"
	"github.com/rithwikbabu/kalshi-tools/internal/infra"
)

// BookSource fetches a complete order book for one market. Satisfied
// by *kalshi.Client; tests substitute fakes.
type BookSource interface {
	GetOrderbook(ctx context.Context, ticker domain.Ticker) (*domain.Snapshot, error)
}

// Poller owns the fetch cadence. Each Subscribe call runs one goroutine
// that fetches immediately, then on every interval tick, and delivers
// epoch-tagged events into the session inbox. Fetches are never
// pipelined: one request in flight per subscription, so responses
// arrive in issue order by construction.
type Poller struct {
	src      BookSource
	interval time.Duration
}

func NewPoller(src BookSource, interval time.Duration) *Poller {
	if interval < infra.MinPollInterval {
		interval = infra.MinPollInterval
	}
	return &Poller{src: src, interval: interval}
}

// Subscription is the handle for one ticker's polling cycle.
type Subscription struct {
	ticker domain.Ticker
	epoch  uint64
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Ticker returns the market this subscription polls.
func (s *Subscription) Ticker() domain.Ticker { return s.ticker }

// Stop tears the subscription down. When it returns, the polling
// goroutine has exited and no further event for this subscription will
// be sent, even if a request was in flight.
func (s *Subscription) Stop() {
	s.cancel()
	s.wg.Wait()
}

// Subscribe starts polling ticker. Events carry epoch so the book
// store can reject anything from a superseded subscription.
func (p *Poller) Subscribe(ctx context.Context, ticker domain.Ticker, epoch uint64, inbox chan<- event.Event) *Subscription {
	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{ticker: ticker, epoch: epoch, cancel: cancel}
	sub.wg.Add(1)
	go p.run(ctx, sub, inbox)
	return sub
}

func (p *Poller) run(ctx context.Context, sub *Subscription, inbox chan<- event.Event) {
	defer sub.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			slog.Error("poller panic recovered", slog.Any("panic", r), slog.String("ticker", string(sub.ticker)))
		}
	}()

	failures := 0
	var holdUntil time.Time

	p.cycle(ctx, sub, inbox, &failures, &holdUntil)

	tick := time.NewTicker(p.interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Debug("polling stopped", slog.String("ticker", string(sub.ticker)))
			return
		case now := <-tick.C:
			// After consecutive failures the backoff hold skips ticks;
			// the interval itself is the retry floor.
			if now.Before(holdUntil) {
				continue
			}
			p.cycle(ctx, sub, inbox, &failures, &holdUntil)
		}
	}
}

func (p *Poller) cycle(ctx context.Context, sub *Subscription, inbox chan<- event.Event, failures *int, holdUntil *time.Time) {
	snap, err := p.src.GetOrderbook(ctx, sub.ticker)

	// A response that lands after teardown belongs to a dead
	// subscription; it must not be delivered anywhere.
	if ctx.Err() != nil {
		return
	}

	if err != nil {
		*failures++
		*holdUntil = time.Now().Add(infra.CalculateBackoff(*failures - 1))
		slog.Warn("orderbook fetch failed",
			slog.String("ticker", string(sub.ticker)),
			slog.Int("consecutive", *failures),
			slog.Any("error", err))
		p.send(ctx, inbox, event.FeedErrorEvent{
			BaseEvent: event.BaseEvent{Epoch: sub.epoch, Ts: time.Now()},
			Err:       err,
		})
		return
	}

	*failures = 0
	*holdUntil = time.Time{}
	p.send(ctx, inbox, event.BookSnapshotEvent{
		BaseEvent: event.BaseEvent{Epoch: sub.epoch, Ts: snap.AsOf},
		Snapshot:  snap,
	})
}

func (p *Poller) send(ctx context.Context, inbox chan<- event.Event, ev event.Event) {
	select {
	case inbox <- ev:
	case <-ctx.Done():
	}
}
