package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func testConfig() Config {
	return Config{
		MaxRetries:  3,
		BaseDelay:   10 * time.Millisecond,
		MaxDelay:    100 * time.Millisecond,
		Multiplier:  2.0,
		JitterRatio: 0,
	}
}

func TestDoSuccess(t *testing.T) {
	ctx := context.Background()

	calls := 0
	result, err := Do(ctx, testConfig(), func() (string, error) {
		calls++
		return "success", nil
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if result != "success" {
		t.Errorf("expected 'success', got %q", result)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDoRetryableError(t *testing.T) {
	ctx := context.Background()

	calls := 0
	result, err := Do(ctx, testConfig(), func() (string, error) {
		calls++
		if calls < 3 {
			return "", Retryable(errors.New("temporary error"))
		}
		return "success", nil
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if result != "success" {
		t.Errorf("expected 'success', got %q", result)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestDoNonRetryableError(t *testing.T) {
	ctx := context.Background()

	calls := 0
	_, err := Do(ctx, testConfig(), func() (string, error) {
		calls++
		return "", errors.New("permanent error")
	})

	if err == nil {
		t.Error("expected error, got nil")
	}
	if calls != 1 {
		t.Errorf("expected 1 call (no retry for non-retryable), got %d", calls)
	}
}

func TestDoMaxRetries(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.MaxRetries = 2

	calls := 0
	_, err := Do(ctx, cfg, func() (string, error) {
		calls++
		return "", Retryable(errors.New("always fails"))
	})

	if err == nil {
		t.Error("expected error after exhausting retries")
	}
	if calls != 3 {
		t.Errorf("expected 3 calls (initial + 2 retries), got %d", calls)
	}
	// The final error is unwrapped
	if IsRetryable(err) {
		t.Error("returned error should be unwrapped, not retryable")
	}
}

func TestDoContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := Do(ctx, testConfig(), func() (string, error) {
		calls++
		return "", Retryable(errors.New("temporary"))
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call before cancellation stopped retries, got %d", calls)
	}
}

func TestRetryableNil(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should be nil")
	}
}

func TestRateLimiterSpacing(t *testing.T) {
	rl := NewRateLimiter(100) // 10ms interval

	ctx := context.Background()
	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := rl.Wait(ctx); err != nil {
			t.Fatalf("Wait error: %v", err)
		}
	}
	elapsed := time.Since(start)

	// Three permits at 10ms spacing need at least ~20ms total
	if elapsed < 15*time.Millisecond {
		t.Errorf("expected rate limiting to space calls, elapsed %v", elapsed)
	}
}

func TestRateLimiterCancelled(t *testing.T) {
	rl := NewRateLimiter(0.001) // very slow

	// First call passes immediately
	if err := rl.Wait(context.Background()); err != nil {
		t.Fatalf("first Wait error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := rl.Wait(ctx); err == nil {
		t.Error("expected cancellation error from second Wait")
	}
}
