package s3gate

import (
	"sync"
	"time"
)

const (
	// DefaultRateLimit is the maximum number of requests per identity within
	// a trailing window.
	DefaultRateLimit = 100
	// DefaultRateWindow is the trailing interval over which requests are
	// counted.
	DefaultRateWindow = 60 * time.Second

	sweepInterval = 5 * time.Minute
)

// RateLimiter caps the number of requests per username within a trailing
// window. It is a sliding-window counter, not a token bucket: bursts are
// capped strictly within any trailing window, not smoothed.
//
// The whole table is guarded by one coarse mutex. The critical section is
// O(window size) and short; the single lock is a deliberate scalability
// ceiling, not a correctness issue.
type RateLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time

	limit  int
	window time.Duration

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a limiter admitting at most limit requests per
// username within the trailing window. A background sweeper evicts usernames
// that have gone a full window without a request; call Stop to terminate it.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	l := &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		stopCh:   make(chan struct{}),
	}
	go l.sweep()
	return l
}

// Allow records and admits a request for the username, or rejects it without
// recording when the window is full. The purge-check-append sequence is
// atomic; two concurrent requests from the same username cannot both slip
// past a full window.
func (l *RateLimiter) Allow(username string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.requests[username][:0]
	for _, ts := range l.requests[username] {
		if now.Sub(ts) < l.window {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= l.limit {
		l.requests[username] = kept
		return false
	}

	l.requests[username] = append(kept, now)
	return true
}

// Active returns the number of usernames currently tracked.
func (l *RateLimiter) Active() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.requests)
}

// Stop terminates the background sweeper. Safe to call more than once.
func (l *RateLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
}

func (l *RateLimiter) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopCh:
			return
		case <-ticker.C:
			now := time.Now()
			l.mu.Lock()
			for username, stamps := range l.requests {
				if len(stamps) == 0 || now.Sub(stamps[len(stamps)-1]) >= l.window {
					delete(l.requests, username)
				}
			}
			l.mu.Unlock()
		}
	}
}
