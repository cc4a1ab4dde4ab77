package logboard

import (
	"sync"
	"time"
)

// trackLimiter is a per-address sliding-window rate limiter guarding the
// track endpoint against flooding.
type trackLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	max    int
	window time.Duration

	done     chan struct{}
	stopOnce sync.Once
}

// newTrackLimiter allows max hits per key per window and sweeps idle keys
// in the background until stop is called.
func newTrackLimiter(max int, window time.Duration) *trackLimiter {
	tl := &trackLimiter{
		hits:   make(map[string][]time.Time),
		max:    max,
		window: window,
		done:   make(chan struct{}),
	}
	go tl.sweep()
	return tl
}

// allow reports whether key is under the limit and records the hit if so.
func (tl *trackLimiter) allow(key string) bool {
	now := time.Now()
	cutoff := now.Add(-tl.window)

	tl.mu.Lock()
	defer tl.mu.Unlock()

	kept := pruneBefore(tl.hits[key], cutoff)
	if len(kept) >= tl.max {
		tl.hits[key] = kept
		return false
	}
	tl.hits[key] = append(kept, now)
	return true
}

func (tl *trackLimiter) sweep() {
	ticker := time.NewTicker(tl.window)
	defer ticker.Stop()
	for {
		select {
		case <-tl.done:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-tl.window)
			tl.mu.Lock()
			for key, hits := range tl.hits {
				kept := pruneBefore(hits, cutoff)
				if len(kept) == 0 {
					delete(tl.hits, key)
				} else {
					tl.hits[key] = kept
				}
			}
			tl.mu.Unlock()
		}
	}
}

func (tl *trackLimiter) stop() {
	tl.stopOnce.Do(func() { close(tl.done) })
}

// pruneBefore drops timestamps at or before cutoff, reusing the backing array.
func pruneBefore(hits []time.Time, cutoff time.Time) []time.Time {
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}
