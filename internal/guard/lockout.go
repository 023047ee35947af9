package guard

import (
	"sync"
	"time"

	"github.com/foosball/league/internal/domain"
)

const (
	MaxAttempts   = 5
	LockoutWindow = 15 * time.Minute
)

// Lockout counts failed logins per player id over a sliding window.
// State is per process. Keys with no failures inside the window are swept
// at most once per window, so ids that are never retried do not pile up.
type Lockout struct {
	mu        sync.Mutex
	failures  map[string][]time.Time
	limit     int
	window    time.Duration
	now       func() time.Time
	lastSweep time.Time
}

// NewLockout creates a lockout that blocks a key after limit failures within window.
func NewLockout(limit int, window time.Duration) *Lockout {
	if limit <= 0 {
		limit = MaxAttempts
	}
	if window <= 0 {
		window = LockoutWindow
	}
	return &Lockout{
		failures: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}
}

// Check returns ErrAccountLocked if key has reached the failure limit.
func (l *Lockout) Check(key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.prune(key)) >= l.limit {
		return domain.ErrAccountLocked("too many failed login attempts, try again later")
	}
	return nil
}

// RecordFailure counts one failed attempt for key.
func (l *Lockout) RecordFailure(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.window {
		for k := range l.failures {
			l.prune(k)
		}
		l.lastSweep = now
	}
	l.failures[key] = append(l.prune(key), now)
}

// Reset forgets all failures for key, e.g. after a successful login.
func (l *Lockout) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.failures, key)
}

// prune drops expired entries for key. Caller holds mu.
func (l *Lockout) prune(key string) []time.Time {
	cutoff := l.now().Add(-l.window)
	entries := l.failures[key]
	valid := entries[:0]
	for _, t := range entries {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	if len(valid) == 0 {
		delete(l.failures, key)
		return nil
	}
	l.failures[key] = valid
	return valid
}
