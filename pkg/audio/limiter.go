package audio

import (
	"sync"
	"time"

	"github.com/opd-ai/go-bouncer/pkg/physics"
)

// Limiter is a token bucket per key. It keeps a disc jittering against a
// wall from flooding the speaker.
type Limiter struct {
	maxTokens int
	window    time.Duration
	clock     physics.Clock
	buckets   map[string]*bucket
	mu        sync.Mutex
}

// bucket tracks the tokens left for one key
type bucket struct {
	tokens     int
	lastRefill time.Time
}

// NewLimiter allows maxTokens events per key per window.
func NewLimiter(maxTokens int, window time.Duration, clock physics.Clock) *Limiter {
	if clock == nil {
		clock = physics.NewSystemClock()
	}
	return &Limiter{
		maxTokens: maxTokens,
		window:    window,
		clock:     clock,
		buckets:   make(map[string]*bucket),
	}
}

// Allow consumes a token for key, reporting whether one was available.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	b, exists := l.buckets[key]
	if !exists {
		b = &bucket{tokens: l.maxTokens, lastRefill: now}
		l.buckets[key] = b
	}

	// Refill in proportion to the fraction of the window that has passed.
	// A full bucket accrues nothing.
	if b.tokens >= l.maxTokens {
		b.lastRefill = now
	} else if elapsed := now.Sub(b.lastRefill); elapsed > 0 {
		refill := int(float64(l.maxTokens) * float64(elapsed) / float64(l.window))
		if refill > 0 {
			b.tokens = min(b.tokens+refill, l.maxTokens)
			b.lastRefill = now
		}
	}

	if b.tokens > 0 {
		b.tokens--
		return true
	}
	return false
}
