package refdata

import (
	"sync"
	"time"
)

// RateLimiter spaces outgoing sheet fetches so repeated reprocessing cannot
// hammer the published endpoints. One gap between consecutive turns; callers
// block in WaitTurn until their slot comes up.
type RateLimiter struct {
	mu   sync.Mutex
	gap  time.Duration
	last time.Time
}

func NewRateLimiter(requestsPerSecond int) *RateLimiter {
	if requestsPerSecond < 1 {
		requestsPerSecond = 1
	}
	return &RateLimiter{gap: time.Second / time.Duration(requestsPerSecond)}
}

// WaitTurn sleeps until a full gap has passed since the previous turn. The
// first call returns immediately. Concurrent callers are serialized in
// arrival order at the mutex.
func (r *RateLimiter) WaitTurn() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if !r.last.IsZero() {
		if wait := r.gap - now.Sub(r.last); wait > 0 {
			time.Sleep(wait)
			now = now.Add(wait)
		}
	}
	r.last = now
}
