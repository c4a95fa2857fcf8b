// Package retry provides utilities for retrying operations with exponential backoff.
// Adapted from the generator's ancestor retry package: the clock-abstraction layer that
// package used for deterministic delay tests is dropped here, since the generator only ever
// retries a single local file write once before giving up (§7 IOError rule) and has no test
// that needs to fast-forward simulated time.
package retry

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

// Config configures retry behavior.
type Config struct {
	// MaxAttempts is the maximum number of attempts (including the initial attempt).
	MaxAttempts int

	// InitialDelay is the delay before the first retry.
	InitialDelay time.Duration

	// MaxDelay is the maximum delay between retries.
	MaxDelay time.Duration

	// Multiplier is the factor by which the delay increases after each retry.
	Multiplier float64

	// Jitter adds randomness to delays. 0.0 means no jitter.
	Jitter float64

	// RetryableFunc determines if an error should trigger a retry. If nil, all non-nil
	// errors are considered retryable.
	RetryableFunc func(error) bool
}

// IOConfig is the generator's "retry once then fail" policy for transient IOErrors (§7):
// one retry, a short fixed delay, no jitter, since row/sidecar writes are local filesystem
// operations where a second near-immediate attempt either succeeds or the failure is durable.
func IOConfig() Config {
	return Config{
		MaxAttempts:  2,
		InitialDelay: 50 * time.Millisecond,
		MaxDelay:     50 * time.Millisecond,
		Multiplier:   1.0,
		Jitter:       0,
	}
}

// Do executes fn with retry logic and returns the last error if all attempts fail.
func Do(ctx context.Context, cfg Config, fn func(ctx context.Context) error) error {
	if cfg.InitialDelay == 0 {
		cfg.InitialDelay = time.Second
	}
	if cfg.MaxDelay == 0 {
		cfg.MaxDelay = 30 * time.Second
	}
	if cfg.Multiplier == 0 {
		cfg.Multiplier = 2.0
	}

	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 1; cfg.MaxAttempts == 0 || attempt <= cfg.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			if lastErr != nil {
				return errors.Join(ctx.Err(), lastErr)
			}
			return ctx.Err()
		default:
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if cfg.RetryableFunc != nil && !cfg.RetryableFunc(err) {
			return err
		}
		if cfg.MaxAttempts != 0 && attempt >= cfg.MaxAttempts {
			break
		}

		wait := delay
		if cfg.Jitter > 0 {
			jitter := wait.Seconds() * cfg.Jitter * (rand.Float64()*2 - 1)
			wait = time.Duration((wait.Seconds() + jitter) * float64(time.Second))
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return errors.Join(ctx.Err(), lastErr)
		case <-timer.C:
		}

		delay = time.Duration(math.Min(float64(cfg.MaxDelay), float64(delay)*cfg.Multiplier))
	}

	return lastErr
}
