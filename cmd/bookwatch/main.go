package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/rithwikbabu/kalshi-tools/internal/app"
	"github.com/rithwikbabu/kalshi-tools/internal/domain"
	"github.com/rithwikbabu/kalshi-tools/internal/infra"
	"github.com/rithwikbabu/kalshi-tools/internal/ui"
	"github.com/rithwikbabu/kalshi-tools/pkg/quant"

	"golang.org/x/term"

	_ "net/http/pprof" // For pprof profiling
)

func main() {
	// A missing .env is fine; it only carries overrides.
	_ = godotenv.Load()

	var (
		configPath = flag.String("config", "", "path to config.yaml")
		ticker     = flag.String("ticker", "", "market ticker to watch")
		refreshMS  = flag.Int("refresh-ms", 0, "poll interval in milliseconds")
		logLevel   = flag.String("log-level", "", "debug, info, warn or error")
		noColor    = flag.Bool("no-color", false, "disable ANSI colors")
		ascii      = flag.Bool("ascii", false, "draw with ASCII instead of unicode")
	)
	flag.Parse()

	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize(app.Overrides{
		ConfigPath: *configPath,
		Ticker:     *ticker,
		RefreshMS:  *refreshMS,
		LogLevel:   *logLevel,
	}); err != nil {
		slog.Error("❌ Bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}
	cfg := bootstrap.Config

	// Debug sidecar, localhost only. Serves pprof and /metrics.
	http.Handle("/metrics", infra.MetricsHandler())
	go func() {
		slog.Info("🕵️ Debug server started", slog.String("addr", cfg.Debug.Addr))
		if err := http.ListenAndServe(cfg.Debug.Addr, nil); err != nil {
			slog.Error("Debug server failed", slog.Any("error", err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	infra.PrintBanner(os.Stderr, cfg)

	restore, err := ui.EnterRawMode()
	if err != nil {
		slog.Error("❌ Terminal setup failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer restore()

	session := ui.NewSession(ui.Options{
		Store:     bootstrap.Store,
		Poller:    bootstrap.Poller,
		Sim:       bootstrap.Sim,
		Keys:      ui.ReadKeys(ctx, os.Stdin),
		Out:       os.Stdout,
		Logger:    slog.Default(),
		Ticker:    domain.Ticker(cfg.UI.Ticker),
		OrderSize: quant.Qty(cfg.UI.OrderSize),
		FrameRate: cfg.FrameInterval(),
		Size:      terminalSize,
		Colors:    !*noColor,
		Unicode:   !*ascii,
	})

	err = session.Run(ctx)
	restore()
	stop()

	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Session ended with error", slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("👋 Goodbye", slog.String("uptime", time.Since(startTime).Truncate(time.Second).String()))
}

var startTime = time.Now()

func terminalSize() (int, int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return 100, 30
	}
	return w, h
}
