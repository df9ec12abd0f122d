// Package ui runs the interactive session: one goroutine owns all view
// state and consumes feed events and keypresses off a single select
// loop, so no field in here ever needs a lock.
package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/rithwikbabu/kalshi-tools/internal/book"
	"github.com/rithwikbabu/kalshi-tools/internal/domain"
	"github.com/rithwikbabu/kalshi-tools/internal/event"
	"github.com/rithwikbabu/kalshi-tools/internal/execution"
	"github.com/rithwikbabu/kalshi-tools/internal/feed"
	"github.com/rithwikbabu/kalshi-tools/internal/infra"
	"github.com/rithwikbabu/kalshi-tools/internal/render"
	"github.com/rithwikbabu/kalshi-tools/pkg/quant"
)

const (
	minOrderSize quant.Qty = 1
	maxOrderSize quant.Qty = 999999

	toastDuration = 3 * time.Second

	defaultWidth  = 100
	defaultHeight = 30

	// Inbox sized for one snapshot plus a burst of error events; the
	// poller blocks rather than drops when the consumer lags.
	inboxSize = 16
)

// clearScreen homes the cursor and wipes the scrollback-visible region.
const clearScreen = "\x1b[2J\x1b[H"

// Options wires a Session. Out and Size default to stdout-ish values;
// tests point them elsewhere.
type Options struct {
	Store  *book.Store
	Poller *feed.Poller
	Sim    execution.Simulator
	Keys   <-chan KeyEvent
	Out    io.Writer
	Logger *slog.Logger

	Ticker    domain.Ticker // initial market, may be empty
	OrderSize quant.Qty
	FrameRate time.Duration

	// Size reports the drawing area. Nil means a fixed default.
	Size func() (w, h int)

	Colors  bool
	Unicode bool
}

// Session is the single consumer of the event inbox. All mutation of
// the view happens on the Run goroutine.
type Session struct {
	store  *book.Store
	poller *feed.Poller
	sim    execution.Simulator
	keys   <-chan KeyEvent
	out    io.Writer
	log    *slog.Logger
	size   func() (int, int)

	inbox chan event.Event
	sub   *feed.Subscription

	ticker domain.Ticker

	cursor     quant.PriceCents
	side       domain.Side
	orderSize  quant.Qty
	logScale   bool
	stale      bool
	errLine    string
	toast      string
	toastUntil time.Time
	receipts   []string

	inputMode   bool
	inputBuffer string

	frameRate time.Duration
	colors    bool
	unicode   bool
	dirty     bool
}

func NewSession(opts Options) *Session {
	s := &Session{
		store:     opts.Store,
		poller:    opts.Poller,
		sim:       opts.Sim,
		keys:      opts.Keys,
		out:       opts.Out,
		log:       opts.Logger,
		size:      opts.Size,
		inbox:     make(chan event.Event, inboxSize),
		cursor:    50,
		side:      domain.SideBid,
		orderSize: clampQty(opts.OrderSize),
		frameRate: opts.FrameRate,
		colors:    opts.Colors,
		unicode:   opts.Unicode,
		ticker:    opts.Ticker,
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.size == nil {
		s.size = func() (int, int) { return defaultWidth, defaultHeight }
	}
	if s.frameRate <= 0 {
		s.frameRate = 100 * time.Millisecond
	}
	return s
}

// Run drives the session until ctx is cancelled or the user quits.
// It subscribes to the initial ticker, then loops over the inbox, the
// key channel and the frame ticker. On return the active subscription
// is stopped and no further feed event can be delivered.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.ticker != "" {
		s.subscribe(ctx, s.ticker)
	} else {
		s.inputMode = true
	}
	defer s.unsubscribe()

	frame := time.NewTicker(s.frameRate)
	defer frame.Stop()

	s.dirty = true
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-s.inbox:
			if !ok {
				return nil
			}
			s.handleEvent(ev)

		case k, ok := <-s.keys:
			if !ok {
				return nil
			}
			if quit := s.handleKey(ctx, k); quit {
				return nil
			}

		case <-frame.C:
			s.tickFrame()
		}
	}
}

func (s *Session) handleEvent(ev event.Event) {
	switch e := ev.(type) {
	case event.BookSnapshotEvent:
		if !s.store.Apply(e.GetEpoch(), e.Snapshot) {
			infra.SnapshotsDroppedTotal.WithLabelValues("stale_epoch").Inc()
			s.log.Debug("snapshot dropped",
				slog.Uint64("epoch", e.GetEpoch()),
				slog.String("ticker", string(e.Snapshot.Ticker)))
			return
		}
		infra.SnapshotsAppliedTotal.Inc()
		infra.BookLevels.WithLabelValues("bid").Set(float64(len(e.Snapshot.Bids)))
		infra.BookLevels.WithLabelValues("ask").Set(float64(len(e.Snapshot.Asks)))
		s.stale = false
		s.errLine = ""
		s.dirty = true

	case event.FeedErrorEvent:
		if e.GetEpoch() != s.store.Epoch() {
			return
		}
		// The last good book stays on screen; only the indicator flips.
		s.stale = true
		s.errLine = e.Err.Error()
		s.dirty = true
	}
}

func (s *Session) handleKey(ctx context.Context, k KeyEvent) (quit bool) {
	// Any key retires the toast early.
	if s.toast != "" {
		s.toast = ""
		s.dirty = true
	}

	if s.inputMode {
		s.handleInputKey(ctx, k)
		return false
	}

	switch {
	case k.Key == KeyQuit, k.Key == KeyRune && k.Rune == 'q':
		return true
	case k.Key == KeyLeft, k.Key == KeyRune && k.Rune == 'h':
		s.moveCursor(-1)
	case k.Key == KeyRight, k.Key == KeyRune && k.Rune == 'l':
		s.moveCursor(+1)
	case k.Key == KeyUp:
		s.adjustSize(+1)
	case k.Key == KeyDown:
		s.adjustSize(-1)
	case k.Key == KeyRune && k.Rune == 's':
		s.side = s.side.Opposite()
		s.dirty = true
	case k.Key == KeyRune && k.Rune == 'g':
		s.logScale = !s.logScale
		s.dirty = true
	case k.Key == KeyRune && k.Rune == 't':
		s.inputMode = true
		s.inputBuffer = ""
		s.dirty = true
	case k.Key == KeyEnter:
		s.placeMock()
	}
	return false
}

func (s *Session) handleInputKey(ctx context.Context, k KeyEvent) {
	switch k.Key {
	case KeyEscape:
		s.inputMode = false
		s.inputBuffer = ""
	case KeyBackspace:
		if len(s.inputBuffer) > 0 {
			s.inputBuffer = s.inputBuffer[:len(s.inputBuffer)-1]
		}
	case KeyEnter:
		raw := s.inputBuffer
		s.inputMode = false
		s.inputBuffer = ""
		s.setTicker(ctx, raw)
	case KeyRune:
		s.inputBuffer += string(k.Rune)
	}
	s.dirty = true
}

// setTicker validates raw and, if it parses, atomically swaps the feed:
// the old subscription is fully stopped before the store re-arms on the
// new epoch, so a late response for the old market can never land.
// A rejected ticker leaves the current book and subscription untouched.
func (s *Session) setTicker(ctx context.Context, raw string) {
	t, err := domain.ParseTicker(raw)
	if err != nil {
		s.errLine = fmt.Sprintf("invalid ticker: %v", err)
		return
	}
	s.subscribe(ctx, t)
}

func (s *Session) subscribe(ctx context.Context, t domain.Ticker) {
	s.unsubscribe()
	epoch := s.store.Activate(t)
	s.sub = s.poller.Subscribe(ctx, t, epoch, s.inbox)
	s.ticker = t
	s.cursor = 50
	s.stale = false
	s.errLine = ""
	s.dirty = true
	s.log.Info("watching market", slog.String("ticker", string(t)), slog.Uint64("epoch", epoch))
}

func (s *Session) unsubscribe() {
	if s.sub == nil {
		return
	}
	s.sub.Stop()
	s.sub = nil
	s.store.Deactivate()
}

func (s *Session) moveCursor(delta int) {
	next := int(s.cursor) + delta
	if next < 0 || next > int(quant.MaxPriceCents) {
		return
	}
	s.cursor = quant.PriceCents(next)
	s.dirty = true
}

func (s *Session) adjustSize(delta quant.Qty) {
	s.orderSize = clampQty(s.orderSize + delta)
	s.dirty = true
}

// placeMock simulates an order against whatever rests at the cursor.
// An empty price level still produces a receipt: the simulator treats
// zero resting size as an unfilled placement.
func (s *Session) placeMock() {
	snap, ok := s.store.Current()
	if !ok {
		s.errLine = "no book yet"
		s.dirty = true
		return
	}
	level, found := snap.LevelAt(s.cursor, s.side)
	if !found {
		level = domain.PriceLevel{Price: s.cursor, Size: 0, Side: s.side}
	}
	order := s.sim.Simulate(level, s.orderSize)
	s.toast = order.Summary()
	s.toastUntil = time.Now().Add(toastDuration)
	s.refreshReceipts()
	s.dirty = true
}

func (s *Session) refreshReceipts() {
	recent := s.sim.Recent(4)
	s.receipts = s.receipts[:0]
	for _, o := range recent {
		s.receipts = append(s.receipts, o.Summary())
	}
}

func (s *Session) tickFrame() {
	if s.toast != "" && time.Now().After(s.toastUntil) {
		s.toast = ""
		s.dirty = true
	}
	if last := s.store.LastUpdate(); !last.IsZero() {
		infra.BookStalenessSeconds.Set(time.Since(last).Seconds())
	}
	if s.dirty {
		s.draw()
		s.dirty = false
	}
}

func (s *Session) draw() {
	snap, _ := s.store.Current()
	w, h := s.size()
	frame := render.Render(&snap, render.View{
		Width:       w,
		Height:      h,
		Cursor:      s.cursor,
		Side:        s.side,
		OrderSize:   s.orderSize,
		LogScale:    s.logScale,
		Stale:       s.stale,
		ErrLine:     s.errLine,
		Toast:       s.toast,
		Receipts:    s.receipts,
		InputMode:   s.inputMode,
		InputBuffer: s.inputBuffer,
		Colors:      s.colors,
		Unicode:     s.unicode,
	})
	fmt.Fprint(s.out, clearScreen+frame)
}

func clampQty(q quant.Qty) quant.Qty {
	if q < minOrderSize {
		return minOrderSize
	}
	if q > maxOrderSize {
		return maxOrderSize
	}
	return q
}
