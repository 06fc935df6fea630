package http

import (
	"testing"
	"time"
)

func TestRateLimiter_ExhaustsCapacity(t *testing.T) {

	limiter := NewRateLimiter(2, time.Minute)
	defer limiter.Stop()

	if !limiter.Allow("10.0.0.1") {
		t.Fatalf("first request should be allowed")
	}
	if !limiter.Allow("10.0.0.1") {
		t.Fatalf("second request should be allowed")
	}
	if limiter.Allow("10.0.0.1") {
		t.Errorf("third request should be rejected")
	}

	// Other clients have their own bucket.
	if !limiter.Allow("10.0.0.2") {
		t.Errorf("different client should be allowed")
	}
}
