package middleware

import (
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestSweepDropsOnlyIdleVisitors(t *testing.T) {
	rl := &RateLimiter{visitors: make(map[string]*visitor), limit: 1, burst: 5}

	rl.getLimiter("10.0.0.1")
	rl.getLimiter("10.0.0.2")
	rl.visitors["10.0.0.1"].lastSeen = time.Now().Add(-10 * time.Minute)

	rl.sweep(3 * time.Minute)

	if _, exists := rl.visitors["10.0.0.1"]; exists {
		t.Fatalf("idle visitor should have been swept")
	}
	if _, exists := rl.visitors["10.0.0.2"]; !exists {
		t.Fatalf("active visitor should have been kept")
	}
}

func TestActiveVisitorKeepsItsBucket(t *testing.T) {
	rl := &RateLimiter{visitors: make(map[string]*visitor), limit: rate.Limit(0.001), burst: 2}

	limiter := rl.getLimiter("10.0.0.3")
	limiter.Allow()
	limiter.Allow()

	// A repeat lookup must return the same drained bucket, not a fresh one.
	if rl.getLimiter("10.0.0.3") != limiter {
		t.Fatalf("expected the same limiter instance for a returning ip")
	}
	if rl.getLimiter("10.0.0.3").Allow() {
		t.Fatalf("drained bucket should still be drained after re-lookup")
	}
}
