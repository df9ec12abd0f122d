package infra

import (
	"fmt"
	"io"
)

// ANSI Color Codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
)

// PrintBanner displays the startup banner. There is exactly one mode:
// simulation. No code path in this binary can submit a live order.
func PrintBanner(w io.Writer, cfg *Config) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s###########################################################%s\n", ColorCyan, ColorReset)
	fmt.Fprintf(w, "%s#                                                         #%s\n", ColorCyan, ColorReset)
	fmt.Fprintf(w, "%s#              bookwatch — Kalshi depth viewer            #%s\n", ColorCyan, ColorReset)
	fmt.Fprintf(w, "%s#                                                         #%s\n", ColorCyan, ColorReset)
	fmt.Fprintf(w, "%s#   VERSION:  %-42s #%s\n", ColorCyan, cfg.App.Version, ColorReset)
	fmt.Fprintf(w, "%s#   ENDPOINT: %-42s #%s\n", ColorCyan, cfg.API.Kalshi.RestURL, ColorReset)
	fmt.Fprintf(w, "%s#   MODE:     %-42s #%s\n", ColorCyan, "SIMULATION ONLY - orders are never sent", ColorReset)
	fmt.Fprintf(w, "%s#                                                         #%s\n", ColorCyan, ColorReset)
	fmt.Fprintf(w, "%s###########################################################%s\n", ColorCyan, ColorReset)
	fmt.Fprintln(w)
}
