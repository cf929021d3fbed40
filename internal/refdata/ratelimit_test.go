package refdata

import (
	"testing"
	"time"
)

func TestRateLimiterSpacesTurns(t *testing.T) {
	rl := NewRateLimiter(50) // 20ms gap

	start := time.Now()
	rl.WaitTurn()
	if elapsed := time.Since(start); elapsed > 10*time.Millisecond {
		t.Fatalf("first turn blocked for %v", elapsed)
	}

	rl.WaitTurn()
	rl.WaitTurn()
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Fatalf("three turns took only %v", elapsed)
	}
}

func TestRateLimiterClampsRate(t *testing.T) {
	rl := NewRateLimiter(0)
	if rl.gap != time.Second {
		t.Fatalf("gap=%v", rl.gap)
	}
	rl = NewRateLimiter(-3)
	if rl.gap != time.Second {
		t.Fatalf("gap=%v", rl.gap)
	}
}
