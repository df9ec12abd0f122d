package app

import (
	"log/slog"
	"os"

	"github.com/rithwikbabu/kalshi-tools/internal/book"
	"github.com/rithwikbabu/kalshi-tools/internal/execution"
	"github.com/rithwikbabu/kalshi-tools/internal/feed"
	"github.com/rithwikbabu/kalshi-tools/internal/infra"
	"github.com/rithwikbabu/kalshi-tools/internal/infra/kalshi"
)

// Bootstrap orchestrates the application startup sequence.
type Bootstrap struct {
	Config *infra.Config
	Client *kalshi.Client
	Store  *book.Store
	Poller *feed.Poller
	Sim    *execution.MockSimulator
}

func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Overrides are the command line flags that win over config and env.
type Overrides struct {
	ConfigPath string
	Ticker     string
	RefreshMS  int
	LogLevel   string
}

// Initialize loads config and builds the component graph. The logger
// writes to stderr: stdout belongs to the chart.
func (b *Bootstrap) Initialize(ov Overrides) error {
	path := ov.ConfigPath
	if path == "" {
		path = infra.ResolveConfigPath()
	}
	cfg, err := infra.LoadConfig(path)
	if err != nil {
		return err
	}
	if ov.Ticker != "" {
		cfg.UI.Ticker = ov.Ticker
	}
	if ov.RefreshMS > 0 {
		cfg.Feed.PollIntervalMS = ov.RefreshMS
	}
	if ov.LogLevel != "" {
		cfg.Logging.Level = ov.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	b.Config = cfg

	logger := infra.NewLogger(os.Stderr, cfg)
	slog.SetDefault(logger)
	slog.Info("🚀 Bootstrapping bookwatch...")

	b.Client = kalshi.NewClient(cfg)
	b.Store = book.NewStore()
	b.Poller = feed.NewPoller(b.Client, cfg.PollInterval())
	b.Sim = execution.NewMockSimulator()

	slog.Info("✅ Components ready",
		slog.String("rest_url", cfg.API.Kalshi.RestURL),
		slog.Duration("poll_interval", cfg.PollInterval()))
	return nil
}
