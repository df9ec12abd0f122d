package infra

import (
	"testing"
	"time"
)

func testBreaker(timeout time.Duration) *CircuitBreaker {
	return NewCircuitBreaker(CircuitBreakerConfig{
		Name:             "test",
		FailureThreshold: 3,
		SuccessThreshold: 2,
		Timeout:          timeout,
	})
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cb := testBreaker(time.Minute)

	for i := 0; i < 2; i++ {
		cb.RecordFailure()
	}
	if cb.GetState() != StateClosed {
		t.Fatal("should stay closed below the threshold")
	}
	if !cb.Allow() {
		t.Fatal("closed breaker must allow requests")
	}

	cb.RecordFailure()
	if cb.GetState() != StateOpen {
		t.Fatal("should open at the threshold")
	}
	if cb.Allow() {
		t.Fatal("open breaker must reject requests")
	}
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	cb := testBreaker(time.Minute)

	cb.RecordFailure()
	cb.RecordFailure()
	cb.RecordSuccess()
	cb.RecordFailure()
	cb.RecordFailure()
	if cb.GetState() != StateClosed {
		t.Fatal("non-consecutive failures must not open the breaker")
	}
}

func TestCircuitBreaker_RecoveryCycle(t *testing.T) {
	cb := testBreaker(10 * time.Millisecond)

	for i := 0; i < 3; i++ {
		cb.RecordFailure()
	}
	if cb.Allow() {
		t.Fatal("should reject while open")
	}

	time.Sleep(15 * time.Millisecond)
	if !cb.Allow() {
		t.Fatal("should probe after the cool-down")
	}
	if cb.GetState() != StateHalfOpen {
		t.Fatalf("state = %s, want HALF_OPEN", cb.GetState())
	}

	cb.RecordSuccess()
	cb.RecordSuccess()
	if cb.GetState() != StateClosed {
		t.Fatal("should close after enough probe successes")
	}
}

func TestCircuitBreaker_ProbeFailureReopens(t *testing.T) {
	cb := testBreaker(10 * time.Millisecond)

	for i := 0; i < 3; i++ {
		cb.RecordFailure()
	}
	time.Sleep(15 * time.Millisecond)
	cb.Allow() // transitions to half-open
	cb.RecordFailure()

	if cb.GetState() != StateOpen {
		t.Fatal("probe failure must re-open the breaker")
	}
}
