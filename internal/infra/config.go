package infra

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// MinPollInterval is the floor on the fetch cadence. The endpoint is
	// public and low-stakes, but a misconfigured interval must not turn
	// into a request storm.
	MinPollInterval = 250 * time.Millisecond

	defaultPollInterval  = 1500 * time.Millisecond
	defaultFrameInterval = 100 * time.Millisecond
	defaultRequestTO     = 5 * time.Second
)

// Config holds the full application configuration, loaded from yaml
// and then overridden by environment variables.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	API struct {
		Kalshi struct {
			RestURL       string `yaml:"rest_url"`
			TimeoutSec    int    `yaml:"timeout_sec"`
			MaxReqPerSec  int    `yaml:"max_req_per_sec"`
			BurstRequests int    `yaml:"burst_requests"`
		} `yaml:"kalshi"`
	} `yaml:"api"`

	Feed struct {
		PollIntervalMS int `yaml:"poll_interval_ms"`
	} `yaml:"feed"`

	UI struct {
		Ticker          string `yaml:"ticker"`
		OrderSize       int64  `yaml:"order_size"`
		FrameIntervalMS int    `yaml:"frame_interval_ms"`
	} `yaml:"ui"`

	Debug struct {
		Addr string `yaml:"addr"`
	} `yaml:"debug"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// DefaultConfig returns a config that works with no file present.
func DefaultConfig() *Config {
	var cfg Config
	cfg.App.Name = "bookwatch"
	cfg.App.Version = "dev"
	cfg.API.Kalshi.RestURL = "https://api.elections.kalshi.com/trade-api/v2"
	cfg.API.Kalshi.TimeoutSec = int(defaultRequestTO / time.Second)
	cfg.API.Kalshi.MaxReqPerSec = 5
	cfg.API.Kalshi.BurstRequests = 3
	cfg.Feed.PollIntervalMS = int(defaultPollInterval / time.Millisecond)
	cfg.UI.OrderSize = 1
	cfg.UI.FrameIntervalMS = int(defaultFrameInterval / time.Millisecond)
	cfg.Debug.Addr = "localhost:6060"
	cfg.Logging.Level = "info"
	return &cfg
}

// LoadConfig reads and parses the config file. A missing file is not an
// error: the defaults are returned so the tool works out of the box.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	overrideWithEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks configuration validity and clamps the poll interval
// to the request-storm floor.
func (c *Config) Validate() error {
	u := c.API.Kalshi.RestURL
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		return fmt.Errorf("invalid Kalshi REST URL: %s", u)
	}
	if c.API.Kalshi.TimeoutSec <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	if c.Feed.PollIntervalMS <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}
	if c.PollInterval() < MinPollInterval {
		c.Feed.PollIntervalMS = int(MinPollInterval / time.Millisecond)
	}
	if c.UI.OrderSize <= 0 {
		return fmt.Errorf("default order size must be positive")
	}
	if c.UI.FrameIntervalMS <= 0 {
		return fmt.Errorf("frame interval must be positive")
	}
	return nil
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Feed.PollIntervalMS) * time.Millisecond
}

func (c *Config) FrameInterval() time.Duration {
	return time.Duration(c.UI.FrameIntervalMS) * time.Millisecond
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.API.Kalshi.TimeoutSec) * time.Second
}

// overrideWithEnv applies environment variables over file values. The
// system carries no secrets, so overrides exist for deploy convenience
// only.
func overrideWithEnv(cfg *Config) {
	if url := os.Getenv("KALSHI_REST_URL"); url != "" {
		cfg.API.Kalshi.RestURL = url
	}
	if ticker := os.Getenv("BOOKWATCH_TICKER"); ticker != "" {
		cfg.UI.Ticker = ticker
	}
	if level := os.Getenv("BOOKWATCH_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
}
