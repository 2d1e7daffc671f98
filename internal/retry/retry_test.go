// internal/retry/retry_test.go
package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func testConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		Multiplier:     2.0,
	}
}

type transientErr struct{ ok bool }

func (e transientErr) Error() string   { return "transient test error" }
func (e transientErr) Transient() bool { return e.ok }

func TestWithRetry_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), testConfig(), func() error {
		calls++
		if calls < 3 {
			return transientErr{ok: true}
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestWithRetry_PermanentStopsImmediately(t *testing.T) {
	calls := 0
	wrapped := errors.New("bad request")
	err := WithRetry(context.Background(), testConfig(), func() error {
		calls++
		return Permanent{Err: wrapped}
	})

	if calls != 1 {
		t.Errorf("permanent error was retried: %d calls", calls)
	}
	if !errors.Is(err, wrapped) {
		t.Errorf("wrapped error lost: %v", err)
	}
}

func TestWithRetry_NonTransientErrorStops(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), testConfig(), func() error {
		calls++
		return transientErr{ok: false}
	})

	if calls != 1 {
		t.Errorf("non-transient error was retried: %d calls", calls)
	}
	if err == nil {
		t.Error("expected the error to surface")
	}
}

func TestWithRetry_ExhaustsAttempts(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), testConfig(), func() error {
		calls++
		return transientErr{ok: true}
	})

	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if err == nil {
		t.Fatal("expected failure after exhausting attempts")
	}
	var te transientErr
	if !errors.As(err, &te) {
		t.Errorf("final error should wrap the last failure: %v", err)
	}
}

func TestWithRetry_ContextCancelStopsBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	cfg := testConfig()
	cfg.InitialBackoff = time.Minute

	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- WithRetry(ctx, cfg, func() error {
			calls++
			return transientErr{ok: true}
		})
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("WithRetry did not honor cancellation during backoff")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestCalculateBackoff_Capped(t *testing.T) {
	cfg := Config{InitialBackoff: time.Second, MaxBackoff: 3 * time.Second, Multiplier: 2.0}

	if got := calculateBackoff(0, cfg); got != time.Second {
		t.Errorf("attempt 0 backoff = %v", got)
	}
	if got := calculateBackoff(1, cfg); got != 2*time.Second {
		t.Errorf("attempt 1 backoff = %v", got)
	}
	if got := calculateBackoff(5, cfg); got != 3*time.Second {
		t.Errorf("backoff should cap at MaxBackoff, got %v", got)
	}
}
