package infra

import (
	"testing"
	"time"
)

func TestRateLimiter_BurstThenDeny(t *testing.T) {
	rl := NewRateLimiter(3, 1) // burst 3, 1 token/s

	for i := 0; i < 3; i++ {
		if !rl.TryAcquire() {
			t.Fatalf("acquire %d within burst should succeed", i)
		}
	}
	if rl.TryAcquire() {
		t.Fatal("acquire beyond burst should be denied")
	}
}

func TestRateLimiter_Refills(t *testing.T) {
	rl := NewRateLimiter(1, 50) // refills fast enough to test

	if !rl.TryAcquire() {
		t.Fatal("first acquire should succeed")
	}
	if rl.TryAcquire() {
		t.Fatal("bucket should be empty immediately after burst")
	}

	time.Sleep(40 * time.Millisecond) // 50/s -> ~2 tokens, capped at 1
	if !rl.TryAcquire() {
		t.Fatal("bucket should have refilled")
	}
}

func TestRateLimiter_CapsAtBurst(t *testing.T) {
	rl := NewRateLimiter(2, 1000)
	time.Sleep(10 * time.Millisecond)

	got := 0
	for rl.TryAcquire() {
		got++
		if got > 10 {
			break
		}
	}
	if got > 3 { // allow one refill during the loop
		t.Errorf("bucket exceeded burst cap: drained %d tokens", got)
	}
}
