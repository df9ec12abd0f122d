package domain

import (
	"errors"
	"strings"
)

// ErrEmptyTicker is returned when a ticker string has no content.
var ErrEmptyTicker = errors.New("ticker must not be empty")

// Ticker identifies a single Kalshi market, e.g. "INXD-24DEC31-T5000".
// Tickers are opaque and case-sensitive; they are never rewritten after
// a fetch cycle has been bound to one.
type Ticker string

// ParseTicker validates a raw ticker string. Empty or whitespace-only
// input fails; everything else passes through untouched.
func ParseTicker(raw string) (Ticker, error) {
	if strings.TrimSpace(raw) == "" {
		return "", ErrEmptyTicker
	}
	return Ticker(raw), nil
}

func (t Ticker) String() string { return string(t) }
