package worker

import (
	"context"
	"path/filepath"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter throttles report writes per output directory.
// A non-positive rate disables throttling.
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a write limiter
func NewLimiter(writesPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 1
	}

	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(writesPerSecond),
		defaultBurst: burst,
	}
}

// Enabled reports whether writes are throttled at all
func (l *Limiter) Enabled() bool {
	return l != nil && l.defaultRate > 0
}

// Wait blocks until a write to dir is allowed or ctx is done
func (l *Limiter) Wait(ctx context.Context, dir string) error {
	if !l.Enabled() {
		return ctx.Err()
	}
	return l.get(dir).Wait(ctx)
}

func (l *Limiter) get(dir string) *rate.Limiter {
	k := key(dir)

	l.mu.RLock()
	limiter, ok := l.limiters[k]
	l.mu.RUnlock()
	if ok {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, ok := l.limiters[k]; ok {
		return limiter
	}
	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[k] = limiter
	return limiter
}

func key(dir string) string {
	return filepath.Clean(dir)
}
