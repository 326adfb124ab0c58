package worker

import (
	"context"
	"testing"
	"time"
)

// tryWait reports whether a write to dir passes within a few milliseconds
func tryWait(l *Limiter, dir string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	return l.Wait(ctx, dir) == nil
}

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 1 {
		t.Errorf("expected default burst 1 for negative input, got %d", l2.defaultBurst)
	}
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(0, 1)
	if limiter.Enabled() {
		t.Error("expected zero rate to disable throttling")
	}

	for i := 0; i < 100; i++ {
		if !tryWait(limiter, "reports") {
			t.Fatalf("expected unthrottled write %d to pass", i)
		}
	}

	var nilLimiter *Limiter
	if err := nilLimiter.Wait(context.Background(), "reports"); err != nil {
		t.Errorf("nil limiter wait failed: %v", err)
	}
}

func TestLimiter_RateLimit(t *testing.T) {
	limiter := NewLimiter(1, 1)

	if !tryWait(limiter, "reports") {
		t.Fatal("first write should pass")
	}

	// Burst 1 is spent
	if tryWait(limiter, "reports") {
		t.Errorf("expected second write to be throttled")
	}

	// Same directory spelled differently shares the bucket
	if tryWait(limiter, "./reports/") {
		t.Errorf("expected cleaned path to share the limiter")
	}

	// Other directory has its own bucket
	if !tryWait(limiter, "archive") {
		t.Errorf("expected write to other directory to pass")
	}
}

func TestLimiter_WaitCancelled(t *testing.T) {
	limiter := NewLimiter(0.1, 1)
	if !tryWait(limiter, "reports") {
		t.Fatal("first write should pass")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx, "reports"); err == nil {
		t.Error("expected wait to fail once the context ends")
	}
}

func TestLimiter_WaitAlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := NewLimiter(0, 1).Wait(ctx, "reports"); err == nil {
		t.Error("expected disabled limiter to report the cancelled context")
	}
}
