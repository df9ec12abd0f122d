package infra

import (
	"time"
)

const (
	baseDelay = 1 * time.Second
	maxDelay  = 30 * time.Second
)

// CalculateBackoff returns the exponential backoff duration for a given
// consecutive-failure count: baseDelay * 2^failures, capped at maxDelay.
// Negative counts return baseDelay.
func CalculateBackoff(failures int) time.Duration {
	if failures < 0 {
		return baseDelay
	}

	// 2^30 seconds is already far beyond maxDelay; cap before shifting
	// to avoid overflow.
	if failures > 30 {
		return maxDelay
	}

	backoff := baseDelay * time.Duration(1<<failures)
	if backoff > maxDelay {
		return maxDelay
	}
	return backoff
}
