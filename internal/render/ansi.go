package render

// ANSI escape sequences for the chart. xterm-256 approximations:
// teal bids, coral asks, white cursor, electric-cyan header, lime best
// bid, amber best ask.
const (
	ansiReset   = "\033[0m"
	ansiBid     = "\033[38;5;48m"
	ansiAsk     = "\033[38;5;203m"
	ansiCursor  = "\033[1;38;5;15m"
	ansiHeader  = "\033[38;5;51m"
	ansiBestBid = "\033[1;38;5;190m"
	ansiBestAsk = "\033[1;38;5;220m"
	ansiStale   = "\033[1;31m"
	ansiBold    = "\033[1m"
)

// glyphs holds the drawing characters; the ASCII set keeps the chart
// readable on terminals without UTF-8.
type glyphs struct {
	bar, vline, hline, dot, up, down rune
}

func glyphsFor(unicode bool) glyphs {
	if unicode {
		return glyphs{bar: '█', vline: '│', hline: '─', dot: '·', up: '▲', down: '▼'}
	}
	return glyphs{bar: '#', vline: '|', hline: '-', dot: '.', up: '^', down: 'v'}
}
