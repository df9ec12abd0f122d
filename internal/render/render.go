// Package render turns a book snapshot into a terminal frame.
//
// Render is a pure function of its arguments: the same snapshot and
// view always produce byte-identical output, so redrawing is idempotent
// and the chart is testable as plain text.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/rithwikbabu/kalshi-tools/internal/domain"
	"github.com/rithwikbabu/kalshi-tools/internal/stats"
	"github.com/rithwikbabu/kalshi-tools/pkg/quant"
)

const (
	headerRows  = 3
	footerRows  = 7
	minPlotRows = 8
	minWidth    = 40
	minHeight   = 16

	maxReceipts = 4
)

// View carries everything about the frame that is not the book itself.
type View struct {
	Width, Height int

	Cursor    quant.PriceCents
	Side      domain.Side
	OrderSize quant.Qty
	LogScale  bool

	Stale    bool
	ErrLine  string // transient error text, takes the tooltip row
	Toast    string // simulated-order confirmation
	Receipts []string

	InputMode   bool   // ticker entry active
	InputBuffer string // ticker text typed so far

	Colors  bool
	Unicode bool
}

// cell is one screen position of the chart block.
type cell struct {
	ch    rune
	color string
}

// Render produces the complete frame for one snapshot.
func Render(snap *domain.Snapshot, v View) string {
	if v.Width < minWidth {
		v.Width = minWidth
	}
	if v.Height < minHeight {
		v.Height = minHeight
	}

	st := stats.Compute(snap)
	g := glyphsFor(v.Unicode)

	var b strings.Builder
	writeHeader(&b, snap, st, v)
	writeChart(&b, snap, st, v, g)
	writeFooter(&b, v)
	return b.String()
}

func writeHeader(b *strings.Builder, snap *domain.Snapshot, st stats.BookStats, v View) {
	line1 := fmt.Sprintf("%s | side=%s | size=%d | scale=%s",
		snap.Ticker, v.Side, int64(v.OrderSize), scaleName(v.LogScale))
	if v.InputMode {
		line1 = fmt.Sprintf("ticker> %s_", v.InputBuffer)
	}
	if v.Stale {
		line1 += colorize(" | STALE", ansiStale, v.Colors)
	}
	b.WriteString(colorize(line1, ansiHeader, v.Colors))
	b.WriteByte('\n')

	bid, ask, spread, mid := "-", "-", "-", "-"
	if st.HasBid {
		bid = st.BestBid.String()
	}
	if st.HasAsk {
		ask = st.BestAsk.String()
	}
	if st.HasBid && st.HasAsk {
		spread = fmt.Sprintf("%dc", st.SpreadCents)
		mid = "$" + st.Mid.StringFixed(2)
	}
	fmt.Fprintf(b, "Bid %s | Ask %s | Spread %s | Mid %s | Depth %d/%d | Imb %s\n",
		bid, ask, spread, mid, int64(st.BidDepth), int64(st.AskDepth), st.Imbalance.StringFixed(2))

	switch {
	case v.ErrLine != "":
		b.WriteString(colorize("Error: "+v.ErrLine, ansiStale, v.Colors))
	default:
		bidQty, askQty := quant.Qty(0), quant.Qty(0)
		if lv, ok := snap.LevelAt(v.Cursor, domain.SideBid); ok {
			bidQty = lv.Size
		}
		if lv, ok := snap.LevelAt(v.Cursor, domain.SideAsk); ok {
			askQty = lv.Size
		}
		tags := ""
		if st.HasBid && v.Cursor == st.BestBid {
			tags = " [BestBid]"
		}
		if st.HasAsk && v.Cursor == st.BestAsk {
			tags += " [BestAsk]"
		}
		fmt.Fprintf(b, "cursor %s | bid qty %d | ask qty %d%s", v.Cursor, int64(bidQty), int64(askQty), tags)
	}
	b.WriteByte('\n')
}

func writeChart(b *strings.Builder, snap *domain.Snapshot, st stats.BookStats, v View, g glyphs) {
	plotRows := v.Height - headerRows - footerRows - 2 // 2 marker rows
	if plotRows < minPlotRows {
		plotRows = minPlotRows
	}
	innerH := plotRows - 2 // minus the two frame rows

	// Inner geometry: two columns per price, viewport centered on the
	// cursor when possible.
	innerLeft := 2
	innerRight := v.Width - 3
	innerW := innerRight - innerLeft + 1
	axis := int(quant.MaxPriceCents) + 1 // 101 discrete prices

	fit := innerW / 2
	if fit > axis {
		fit = axis
	}
	if fit < 1 {
		fit = 1
	}
	start := int(v.Cursor) - fit/2
	start = clamp(start, 0, axis-fit)
	end := start + fit - 1

	contentLeft := innerLeft + (innerW-fit*2)/2
	frameLeft := contentLeft - 1
	frameRight := contentLeft + fit*2

	xBid := func(p int) int { return contentLeft + 2*(p-start) }
	xAsk := func(p int) int { return xBid(p) + 1 }

	rows := plotRows + 2 // marker row above and below
	grid := make([][]cell, rows)
	for y := range grid {
		grid[y] = make([]cell, v.Width)
		for x := range grid[y] {
			grid[y][x] = cell{ch: ' '}
		}
	}
	set := func(y, x int, ch rune, color string) {
		if y >= 0 && y < rows && x >= 0 && x < v.Width {
			grid[y][x] = cell{ch: ch, color: color}
		}
	}
	setIfBlank := func(y, x int, ch rune, color string) {
		if y >= 0 && y < rows && x >= 0 && x < v.Width && grid[y][x].ch == ' ' {
			grid[y][x] = cell{ch: ch, color: color}
		}
	}
	setText := func(y, xCenter int, s string, color string) {
		x := clamp(xCenter-len(s)/2, innerLeft, max(innerLeft, innerRight-len(s)+1))
		for i, ch := range s {
			set(y, x+i, ch, color)
		}
	}

	topFrame, innerTop := 1, 2
	bottomFrame := innerTop + innerH
	bottomMarker := bottomFrame + 1

	for x := frameLeft; x <= frameRight; x++ {
		set(topFrame, x, g.hline, "")
		set(bottomFrame, x, g.hline, "")
	}
	for y := innerTop; y < innerTop+innerH; y++ {
		set(y, frameLeft, g.vline, "")
		set(y, frameRight, g.vline, "")
	}

	if snap.IsEmpty() {
		setText(innerTop+innerH/2, v.Width/2, "no data", ansiBold)
	} else {
		bidBins, askBins := bins(snap)

		// Visible-range scale. maxT stays at 1 when every size is
		// zero, which renders empty bars instead of dividing by zero.
		maxT := 1.0
		for p := start; p <= end; p++ {
			maxT = math.Max(maxT, transform(bidBins[p], v.LogScale))
			maxT = math.Max(maxT, transform(askBins[p], v.LogScale))
		}
		heightFor := func(q quant.Qty) int {
			return int(transform(q, v.LogScale) / maxT * float64(innerH))
		}

		// Cursor first so bars overdraw where they overlap.
		cx := xBid(int(v.Cursor))
		if v.Side == domain.SideAsk {
			cx = xAsk(int(v.Cursor))
		}
		if start <= int(v.Cursor) && int(v.Cursor) <= end {
			for y := innerTop; y < innerTop+innerH; y++ {
				set(y, cx, g.vline, ansiCursor)
			}
			set(0, cx, g.down, ansiCursor)
			set(bottomMarker, cx, g.up, ansiCursor)
		}

		for p := start; p <= end; p++ {
			for dy := 0; dy < heightFor(bidBins[p]); dy++ {
				set(innerTop+innerH-1-dy, xBid(p), g.bar, ansiBid)
			}
			for dy := 0; dy < heightFor(askBins[p]); dy++ {
				set(innerTop+innerH-1-dy, xAsk(p), g.bar, ansiAsk)
			}
		}

		// Best price guides fill only blank cells so bars stay intact.
		if st.HasBid && start <= int(st.BestBid) && int(st.BestBid) <= end {
			x := xBid(int(st.BestBid))
			for i := 0; i < innerH; i += 2 {
				setIfBlank(innerTop+i, x, g.dot, ansiBestBid)
			}
		}
		if st.HasAsk && start <= int(st.BestAsk) && int(st.BestAsk) <= end {
			x := xAsk(int(st.BestAsk))
			for i := 0; i < innerH; i += 2 {
				setIfBlank(innerTop+i, x, g.dot, ansiBestAsk)
			}
		}
	}

	for y := 0; y < rows; y++ {
		b.WriteString(rowString(grid[y], v.Colors))
		b.WriteByte('\n')
	}
}

func writeFooter(b *strings.Builder, v View) {
	if v.Toast != "" {
		b.WriteString(colorize(v.Toast, ansiBestBid, v.Colors))
	}
	b.WriteByte('\n')
	fmt.Fprintf(b, "%s\n", colorize(
		fmt.Sprintf("(Enter simulates %d %s @ cursor, nothing is sent)", int64(v.OrderSize), v.Side),
		ansiBold, v.Colors))
	b.WriteString("Simulated orders:\n")
	n := 0
	for _, r := range v.Receipts {
		if n == maxReceipts {
			break
		}
		b.WriteString("  " + r + "\n")
		n++
	}
	for ; n < maxReceipts; n++ {
		b.WriteByte('\n')
	}
}

// bins spreads the snapshot across the 0..100 price axis per side.
func bins(snap *domain.Snapshot) (bid, ask []quant.Qty) {
	axis := int(quant.MaxPriceCents) + 1
	bid = make([]quant.Qty, axis)
	ask = make([]quant.Qty, axis)
	for _, lv := range snap.Bids {
		if lv.Price.Valid() {
			bid[lv.Price] += lv.Size
		}
	}
	for _, lv := range snap.Asks {
		if lv.Price.Valid() {
			ask[lv.Price] += lv.Size
		}
	}
	return bid, ask
}

func transform(q quant.Qty, logScale bool) float64 {
	if logScale {
		return math.Log10(float64(q) + 1.0)
	}
	return float64(q)
}

// rowString serializes one grid row, emitting color codes only on
// change and trimming trailing blanks.
func rowString(row []cell, colors bool) string {
	last := len(row) - 1
	for last >= 0 && row[last].ch == ' ' {
		last--
	}

	var sb strings.Builder
	active := ""
	for i := 0; i <= last; i++ {
		c := row[i]
		if !colors {
			sb.WriteRune(c.ch)
			continue
		}
		if c.color != active {
			if active != "" {
				sb.WriteString(ansiReset)
			}
			if c.color != "" {
				sb.WriteString(c.color)
			}
			active = c.color
		}
		sb.WriteRune(c.ch)
	}
	if colors && active != "" {
		sb.WriteString(ansiReset)
	}
	return sb.String()
}

func colorize(s, color string, colors bool) string {
	if !colors {
		return s
	}
	return color + s + ansiReset
}

func scaleName(logScale bool) string {
	if logScale {
		return "log10"
	}
	return "linear"
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
