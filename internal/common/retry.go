package common

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/akihabara-market/internal/service"
)

var (
	// ErrRateLimit indicates that the API rate limit has been exceeded.
	ErrRateLimit = errors.New("rate limit exceeded")
	// ErrMaxRetries indicates that all retry attempts have been exhausted.
	ErrMaxRetries = errors.New("max retries exceeded")
)

// RetryableError marks whether repeating the failed operation can help.
type RetryableError struct {
	Err       error
	Retryable bool
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// WithRetry runs operation until it succeeds, fails with a non-retryable
// RetryableError, or uses up opts.MaxAttempts. The wait between attempts
// grows by opts.Multiplier up to opts.MaxDelay; ErrRateLimit waits the
// maximum straight away. A done ctx stops the loop with ctx.Err().
func WithRetry(ctx context.Context, operation func() error, opts service.RetryOptions) error {
	opts = retryDefaults(opts)
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	delay := opts.InitialDelay
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := operation()
		if err == nil {
			return nil
		}

		var retryableErr *RetryableError
		if errors.As(err, &retryableErr) && !retryableErr.Retryable {
			return retryableErr.Err
		}
		if attempt >= opts.MaxAttempts {
			return fmt.Errorf("%w after %d attempts: %w", ErrMaxRetries, attempt, err)
		}

		if errors.Is(err, ErrRateLimit) {
			delay = opts.MaxDelay
		}
		logger.Warn("retrying",
			"attempt", attempt,
			"max_attempts", opts.MaxAttempts,
			"delay", delay,
			"error", err)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay = nextDelay(delay, opts)
	}
}

func retryDefaults(opts service.RetryOptions) service.RetryOptions {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.InitialDelay <= 0 {
		opts.InitialDelay = 100 * time.Millisecond
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = 30 * time.Second
	}
	if opts.Multiplier <= 0 {
		opts.Multiplier = 2.0
	}
	return opts
}

func nextDelay(delay time.Duration, opts service.RetryOptions) time.Duration {
	next := time.Duration(float64(delay) * opts.Multiplier)
	if next > opts.MaxDelay || next <= 0 {
		return opts.MaxDelay
	}
	return next
}
