package http

import (
	"sync"
	"time"
)

const (
	staleBucketAge  = 1 * time.Hour
	cleanupInterval = 30 * time.Minute
)

// RateLimiter is a fixed-window token bucket per client IP. Buckets for
// idle clients are dropped by a background cleanup loop.
type RateLimiter struct {
	mu        sync.Mutex
	capacity  int
	refillDur time.Duration
	buckets   map[string]*ipBucket
	stop      chan struct{}
}

type ipBucket struct {
	tokens     int
	lastRefill time.Time
}

func NewRateLimiter(capacity int, refillDur time.Duration) *RateLimiter {
	rl := &RateLimiter{
		capacity:  capacity,
		refillDur: refillDur,
		buckets:   make(map[string]*ipBucket),
		stop:      make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Allow reports whether the client may make another request now.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	bucket, exists := rl.buckets[ip]

	if !exists {
		rl.buckets[ip] = &ipBucket{
			tokens:     rl.capacity - 1,
			lastRefill: now,
		}
		return true
	}

	if now.Sub(bucket.lastRefill) >= rl.refillDur {
		bucket.tokens = rl.capacity
		bucket.lastRefill = now
	}

	if bucket.tokens <= 0 {
		return false
	}

	bucket.tokens--
	return true
}

func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stop:
			return
		}
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for ip, bucket := range rl.buckets {
		if now.Sub(bucket.lastRefill) > staleBucketAge {
			delete(rl.buckets, ip)
		}
	}
}
