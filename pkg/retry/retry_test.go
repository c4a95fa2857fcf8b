package retry

import (
	"context"
	"errors"
	"testing"
)

func TestDoSucceedsOnFirstAttempt(t *testing.T) {
	calls := 0
	err := Do(context.Background(), IOConfig(), func(ctx context.Context) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestDoRetriesOnceThenFails(t *testing.T) {
	calls := 0
	wantErr := errors.New("write failed")
	err := Do(context.Background(), IOConfig(), func(ctx context.Context) error {
		calls++
		return wantErr
	})
	if err == nil {
		t.Fatalf("expected error after exhausting attempts")
	}
	if calls != 2 {
		t.Fatalf("expected exactly 2 attempts (1 retry), got %d", calls)
	}
}

func TestDoSucceedsOnSecondAttempt(t *testing.T) {
	calls := 0
	err := Do(context.Background(), IOConfig(), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestDoRespectsNonRetryableFunc(t *testing.T) {
	calls := 0
	cfg := IOConfig()
	cfg.RetryableFunc = func(err error) bool { return false }
	err := Do(context.Background(), cfg, func(ctx context.Context) error {
		calls++
		return errors.New("fatal")
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if calls != 1 {
		t.Fatalf("expected no retry for non-retryable error, got %d calls", calls)
	}
}

func TestDoCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Do(ctx, IOConfig(), func(ctx context.Context) error {
		return errors.New("should not matter")
	})
	if err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}
