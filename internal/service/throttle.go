package service

import (
	"sync"
	"time"
)

// Throttle is a per-key token bucket. Idle keys are pruned lazily on Allow.
type Throttle struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	rate     float64 // tokens added per second
	capacity float64
	idle     time.Duration
	now      func() time.Time
}

type bucket struct {
	tokens float64
	last   time.Time
}

// NewThrottle allows up to capacity attempts per key, refilling at rate
// tokens per second. now may be nil.
func NewThrottle(rate, capacity float64, now func() time.Time) *Throttle {
	if now == nil {
		now = time.Now
	}
	return &Throttle{
		buckets:  make(map[string]*bucket),
		rate:     rate,
		capacity: capacity,
		idle:     10 * time.Minute,
		now:      now,
	}
}

// Allow consumes one token for key and reports whether one was available.
func (t *Throttle) Allow(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.prune(now)

	b, ok := t.buckets[key]
	if !ok {
		b = &bucket{tokens: t.capacity, last: now}
		t.buckets[key] = b
	}

	elapsed := now.Sub(b.last).Seconds()
	b.tokens = min(b.tokens+elapsed*t.rate, t.capacity)
	b.last = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Len returns the number of tracked keys.
func (t *Throttle) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.buckets)
}

func (t *Throttle) prune(now time.Time) {
	cutoff := now.Add(-t.idle)
	for key, b := range t.buckets {
		if b.last.Before(cutoff) {
			delete(t.buckets, key)
		}
	}
}
