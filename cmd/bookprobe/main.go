package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/rithwikbabu/kalshi-tools/internal/domain"
	"github.com/rithwikbabu/kalshi-tools/internal/infra"
	"github.com/rithwikbabu/kalshi-tools/internal/infra/kalshi"
	"github.com/rithwikbabu/kalshi-tools/internal/stats"
)

// bookprobe fetches one order book and prints it as text. It is the
// plumbing check for the read-only Kalshi endpoint: no loop, no UI.
func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to config.yaml")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: bookprobe [flags] TICKER")
		os.Exit(2)
	}
	ticker, err := domain.ParseTicker(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad ticker: %v\n", err)
		os.Exit(2)
	}

	path := *configPath
	if path == "" {
		path = infra.ResolveConfigPath()
	}
	cfg, err := infra.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	fmt.Println("=== Kalshi Order Book Probe ===")
	fmt.Println()

	snap, err := kalshi.NewClient(cfg).GetOrderbook(ctx, ticker)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fetch: %v\n", err)
		os.Exit(1)
	}

	st := stats.Compute(snap)
	fmt.Printf("📊 %s (as of %s)\n", snap.Ticker, snap.AsOf.Format(time.RFC3339))
	if st.HasBid && st.HasAsk {
		fmt.Printf("   best bid %s | best ask %s | spread %dc | mid $%s\n",
			st.BestBid, st.BestAsk, st.SpreadCents, st.Mid.StringFixed(2))
	}
	fmt.Printf("   depth %d/%d | imbalance %s\n",
		int64(st.BidDepth), int64(st.AskDepth), st.Imbalance.StringFixed(2))
	fmt.Println()

	fmt.Println("BIDS (best first)")
	for _, lv := range snap.Bids {
		fmt.Printf("   %4s  x %d\n", lv.Price, lv.Size)
	}
	fmt.Println("ASKS (best first)")
	for _, lv := range snap.Asks {
		fmt.Printf("   %4s  x %d\n", lv.Price, lv.Size)
	}
	if snap.IsEmpty() {
		fmt.Println("   (empty book)")
	}
}
