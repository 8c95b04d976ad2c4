package utils

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func quietLogger() *Logger {
	var buf bytes.Buffer
	return NewLoggerTo(&buf, &buf)
}

func TestRetrySucceedsAfterFailures(t *testing.T) {
	r := &RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, Logger: quietLogger()}

	calls := 0
	err := r.Do(context.Background(), "flaky", func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("boom")
		}
		return nil
	})

	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestRetryGivesUp(t *testing.T) {
	r := &RetryConfig{MaxAttempts: 2, BaseDelay: time.Millisecond, Logger: quietLogger()}
	sentinel := errors.New("down")

	calls := 0
	err := r.Do(context.Background(), "always-fails", func(context.Context) error {
		calls++
		return sentinel
	})

	require.ErrorIs(t, err, sentinel)
	require.Equal(t, 2, calls)
}

func TestRetryStopsOnCancelledContext(t *testing.T) {
	r := &RetryConfig{MaxAttempts: 5, BaseDelay: time.Hour, Logger: quietLogger()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := r.Do(ctx, "cancelled", func(context.Context) error {
		calls++
		return errors.New("nope")
	})

	require.Error(t, err)
	require.Equal(t, 1, calls)
}

func TestLoggerDebugToggle(t *testing.T) {
	var out bytes.Buffer
	l := NewLoggerTo(&out, &out)

	l.SetDebug(false)
	l.Debug("hidden %d", 1)
	require.Empty(t, out.String())

	l.SetDebug(true)
	l.Debug("shown %d", 2)
	require.Contains(t, out.String(), "shown 2")
}
