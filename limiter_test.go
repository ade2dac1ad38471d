package folio

import (
	"testing"
	"time"
)

func TestRequestLimiterBlocksAfterMax(t *testing.T) {
	limiter := NewRequestLimiter(2, 200*time.Millisecond)
	defer limiter.Stop()
	key := "ws-1"

	if !limiter.Allow(key) {
		t.Fatalf("expected first call to be allowed")
	}
	if !limiter.Allow(key) {
		t.Fatalf("expected second call to be allowed")
	}
	if limiter.Allow(key) {
		t.Fatalf("expected third call to be blocked")
	}
}

func TestRequestLimiterResetsAfterWindow(t *testing.T) {
	limiter := NewRequestLimiter(1, 150*time.Millisecond)
	defer limiter.Stop()
	key := "ws-2"

	if !limiter.Allow(key) {
		t.Fatalf("expected first call to be allowed")
	}
	if limiter.Allow(key) {
		t.Fatalf("expected second call to be blocked")
	}

	time.Sleep(200 * time.Millisecond)
	if !limiter.Allow(key) {
		t.Fatalf("expected call after window to be allowed")
	}
}

func TestRequestLimiterIsPerWorkspace(t *testing.T) {
	limiter := NewRequestLimiter(1, 200*time.Millisecond)
	defer limiter.Stop()

	if !limiter.Allow("ws-a") {
		t.Fatalf("expected first workspace to be allowed")
	}
	if !limiter.Allow("ws-b") {
		t.Fatalf("expected second workspace to be allowed independently")
	}
	if limiter.Allow("ws-a") {
		t.Fatalf("expected first workspace to be blocked after max")
	}
}

func TestRequestLimiterCheckDoesNotRecord(t *testing.T) {
	limiter := NewRequestLimiter(1, time.Second)
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		if !limiter.Check("ws") {
			t.Fatalf("check %d: expected allowed", i)
		}
	}
	limiter.Record("ws")
	if limiter.Check("ws") {
		t.Fatalf("expected check to fail after record")
	}
}

func TestRequestLimiterStopIsIdempotent(t *testing.T) {
	limiter := NewRequestLimiter(1, 10*time.Millisecond)
	limiter.Stop()
	limiter.Stop()
}
