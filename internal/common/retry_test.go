package common

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/akihabara-market/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(attempts int) service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2,
	}
}

func TestWithRetry_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("temporary")
		}
		return nil
	}, fastRetry(5))

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetry_ExhaustsAttempts(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return boom
	}, fastRetry(2))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMaxRetries)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestWithRetry_StopsOnNonRetryable(t *testing.T) {
	bad := errors.New("bad request")
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return &RetryableError{Err: bad, Retryable: false}
	}, fastRetry(5))

	assert.Equal(t, bad, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := WithRetry(ctx, func() error {
		calls++
		cancel()
		return errors.New("fail")
	}, service.RetryOptions{MaxAttempts: 5, InitialDelay: time.Second})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_DoneContextSkipsOperation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := WithRetry(ctx, func() error {
		calls++
		return nil
	}, fastRetry(3))

	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}

func TestWithRetry_LogsThroughOptionsLogger(t *testing.T) {
	var buf bytes.Buffer
	opts := fastRetry(3)
	opts.Logger = slog.New(slog.NewTextHandler(&buf, nil))

	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		if calls == 1 {
			return errors.New("gateway timeout")
		}
		return nil
	}, opts)

	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(buf.String(), "msg=retrying"))
	assert.Contains(t, buf.String(), "gateway timeout")
}

func TestNextDelay(t *testing.T) {
	opts := service.RetryOptions{Multiplier: 2, MaxDelay: 5 * time.Second}

	assert.Equal(t, 2*time.Second, nextDelay(time.Second, opts))
	assert.Equal(t, 5*time.Second, nextDelay(4*time.Second, opts))
	assert.Equal(t, 5*time.Second, nextDelay(5*time.Second, opts))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrRateLimit))
	assert.True(t, IsRetryable(context.DeadlineExceeded))
	assert.True(t, IsRetryable(&RetryableError{Err: errors.New("x"), Retryable: true}))
	assert.False(t, IsRetryable(&RetryableError{Err: errors.New("x"), Retryable: false}))
	assert.False(t, IsRetryable(errors.New("plain")))
}

func TestUserError(t *testing.T) {
	inner := errors.New("disk full")
	err := NewUserError("could not save product", inner)

	assert.Equal(t, "could not save product: disk full", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "only message", NewUserError("only message", nil).Error())
}
