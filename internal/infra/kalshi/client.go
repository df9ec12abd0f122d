package kalshi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rithwikbabu/kalshi-tools/internal/domain"
	"github.com/rithwikbabu/kalshi-tools/internal/infra"
)

var (
	// ErrThrottled: the local token bucket is empty. The cycle is
	// skipped; no request left the process.
	ErrThrottled = errors.New("kalshi: request throttled by local rate limit")
	// ErrCircuitOpen: the endpoint has been failing hard and the
	// breaker is holding requests back until its cool-down passes.
	ErrCircuitOpen = errors.New("kalshi: circuit open, endpoint considered down")
)

// StatusError is a non-2xx response from the endpoint.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("kalshi: unexpected status code: %d", e.Code)
}

// Client reads order books from the public Kalshi market-data endpoint.
// It is strictly read-only: the only method issues GET requests, and
// nothing else in the process owns a transport.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *infra.RateLimiter
	breaker    *infra.CircuitBreaker
	now        func() time.Time
}

// NewClient creates a market-data client from the configuration.
func NewClient(cfg *infra.Config) *Client {
	return &Client{
		baseURL: cfg.API.Kalshi.RestURL,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout(),
		},
		limiter: infra.NewRateLimiter(cfg.API.Kalshi.BurstRequests, float64(cfg.API.Kalshi.MaxReqPerSec)),
		breaker: infra.NewCircuitBreaker(infra.DefaultCircuitBreakerConfig("kalshi-market-data")),
		now:     time.Now,
	}
}

// GetOrderbook fetches and parses the complete book for one market.
func (c *Client) GetOrderbook(ctx context.Context, ticker domain.Ticker) (*domain.Snapshot, error) {
	if !c.limiter.TryAcquire() {
		infra.FetchErrorsTotal.WithLabelValues("throttled").Inc()
		return nil, ErrThrottled
	}
	if !c.breaker.Allow() {
		infra.FetchErrorsTotal.WithLabelValues("circuit_open").Inc()
		return nil, ErrCircuitOpen
	}

	infra.FetchesTotal.Inc()

	snap, err := c.doFetch(ctx, ticker)
	if err != nil {
		c.breaker.RecordFailure()
		infra.FetchErrorsTotal.WithLabelValues(errReason(err)).Inc()
		return nil, err
	}

	c.breaker.RecordSuccess()
	return snap, nil
}

func (c *Client) doFetch(ctx context.Context, ticker domain.Ticker) (*domain.Snapshot, error) {
	u := fmt.Sprintf("%s/markets/%s/orderbook", c.baseURL, url.PathEscape(string(ticker)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", infra.DefaultUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch orderbook for %s: %w", ticker, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read orderbook body: %w", err)
	}

	return parseSnapshot(ticker, body, c.now())
}

// errReason buckets an error for the fetch-error metric.
func errReason(err error) string {
	var statusErr *StatusError
	switch {
	case errors.Is(err, ErrMalformed):
		return "parse"
	case errors.As(err, &statusErr):
		return "status"
	default:
		return "transport"
	}
}
