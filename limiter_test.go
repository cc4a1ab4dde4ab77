package logboard

import (
	"testing"
	"time"
)

func TestTrackLimiterBlocksAfterMax(t *testing.T) {
	limiter := newTrackLimiter(2, 200*time.Millisecond)
	defer limiter.stop()
	ip := "203.0.113.10"

	if !limiter.allow(ip) {
		t.Fatalf("expected first hit to be allowed")
	}
	if !limiter.allow(ip) {
		t.Fatalf("expected second hit to be allowed")
	}
	if limiter.allow(ip) {
		t.Fatalf("expected third hit to be blocked")
	}
}

func TestTrackLimiterFreesAfterWindow(t *testing.T) {
	limiter := newTrackLimiter(1, 150*time.Millisecond)
	defer limiter.stop()
	ip := "203.0.113.20"

	if !limiter.allow(ip) {
		t.Fatalf("expected first hit to be allowed")
	}
	if limiter.allow(ip) {
		t.Fatalf("expected second hit to be blocked")
	}

	time.Sleep(200 * time.Millisecond)
	if !limiter.allow(ip) {
		t.Fatalf("expected hit after window to be allowed")
	}
}

func TestTrackLimiterIsPerAddress(t *testing.T) {
	limiter := newTrackLimiter(1, 200*time.Millisecond)
	defer limiter.stop()

	if !limiter.allow("203.0.113.30") {
		t.Fatalf("expected first address to be allowed")
	}
	if !limiter.allow("203.0.113.31") {
		t.Fatalf("expected second address to be allowed independently")
	}
	if limiter.allow("203.0.113.30") {
		t.Fatalf("expected first address to be blocked after max")
	}
}

func TestTrackLimiterStopIsIdempotent(t *testing.T) {
	limiter := newTrackLimiter(1, time.Minute)
	limiter.stop()
	limiter.stop()
}
