package ratelimit

import (
	"sync"
	"time"
)

const (
	DefaultWindow = time.Minute
	DefaultMax    = 6
)

// Limiter decides whether a client key may make another request at now.
type Limiter interface {
	Allow(key string, now time.Time) Decision
}

type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// SlidingWindow keeps the admitted timestamps of every key inside the window.
// State is process-local; multi-instance deployments need a shared Limiter.
type SlidingWindow struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	buckets map[string][]time.Time
}

func NewSlidingWindow(window time.Duration, max int) *SlidingWindow {
	if window <= 0 {
		window = DefaultWindow
	}
	if max <= 0 {
		max = DefaultMax
	}
	return &SlidingWindow{
		window:  window,
		max:     max,
		buckets: make(map[string][]time.Time),
	}
}

func (l *SlidingWindow) Allow(key string, now time.Time) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	stamps := l.pruneLocked(l.buckets[key], now)
	if len(stamps) >= l.max {
		l.buckets[key] = stamps
		return Decision{
			Allowed:    false,
			RetryAfter: stamps[0].Add(l.window).Sub(now),
		}
	}
	stamps = append(stamps, now)
	l.buckets[key] = stamps
	return Decision{Allowed: true, Remaining: l.max - len(stamps)}
}

// Sweep drops keys whose timestamps have all left the window and returns how many were removed.
func (l *SlidingWindow) Sweep(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	removed := 0
	for key, stamps := range l.buckets {
		stamps = l.pruneLocked(stamps, now)
		if len(stamps) == 0 {
			delete(l.buckets, key)
			removed++
			continue
		}
		l.buckets[key] = stamps
	}
	return removed
}

func (l *SlidingWindow) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *SlidingWindow) pruneLocked(stamps []time.Time, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)
	i := 0
	for i < len(stamps) && !stamps[i].After(cutoff) {
		i++
	}
	if i == 0 {
		return stamps
	}
	return append([]time.Time(nil), stamps[i:]...)
}
