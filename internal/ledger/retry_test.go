package ledger

import (
	"context"
	"errors"
	"io"
	"syscall"
	"testing"
	"time"

	"github.com/goran-ethernal/CertIndexor/internal/common"
	"github.com/goran-ethernal/CertIndexor/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNetError implements net.Error for testing
type fakeNetError struct {
	msg     string
	timeout bool
}

func (e *fakeNetError) Error() string   { return e.msg }
func (e *fakeNetError) Timeout() bool   { return e.timeout }
func (e *fakeNetError) Temporary() bool { return e.timeout }

func testRetryConfig(attempts int) *config.RetryConfig {
	return &config.RetryConfig{
		MaxAttempts:       attempts,
		InitialBackoff:    common.NewDuration(5 * time.Millisecond),
		MaxBackoff:        common.NewDuration(50 * time.Millisecond),
		BackoffMultiplier: 2.0,
	}
}

func TestRetryableError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{name: "nil error", err: nil, retryable: false},
		{name: "net error", err: &fakeNetError{msg: "i/o timeout", timeout: true}, retryable: true},
		{name: "connection refused", err: syscall.ECONNREFUSED, retryable: true},
		{name: "connection reset", err: syscall.ECONNRESET, retryable: true},
		{name: "broken pipe", err: syscall.EPIPE, retryable: true},
		{name: "deadline exceeded", err: context.DeadlineExceeded, retryable: true},
		{name: "cancelled", err: context.Canceled, retryable: false},
		{name: "rate limited", err: errors.New("429 Too Many Requests"), retryable: true},
		{name: "service unavailable", err: errors.New("503 Service Unavailable"), retryable: true},
		{name: "websocket closed", err: errors.New("websocket: close 1006 (abnormal closure)"), retryable: true},
		{name: "unexpected eof", err: io.ErrUnexpectedEOF, retryable: true},
		{name: "invalid params", err: errors.New("invalid params"), retryable: false},
		{name: "unauthorized", err: errors.New("401 Unauthorized"), retryable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, retryableError(tt.err))
		})
	}
}

func TestCalculateBackoff(t *testing.T) {
	cfg := &config.RetryConfig{
		InitialBackoff:    common.NewDuration(1 * time.Second),
		MaxBackoff:        common.NewDuration(5 * time.Second),
		BackoffMultiplier: 2.0,
	}

	tests := []struct {
		attempt int
		min     time.Duration
		max     time.Duration
	}{
		{attempt: 1, min: 0, max: 0},
		{attempt: 2, min: 750 * time.Millisecond, max: 1250 * time.Millisecond},
		{attempt: 3, min: 1500 * time.Millisecond, max: 2500 * time.Millisecond},
		{attempt: 10, min: 3750 * time.Millisecond, max: 6250 * time.Millisecond},
	}

	for _, tt := range tests {
		for range 10 {
			wait := calculateBackoff(tt.attempt, cfg)
			assert.GreaterOrEqual(t, wait, tt.min, "attempt %d", tt.attempt)
			assert.LessOrEqual(t, wait, tt.max, "attempt %d", tt.attempt)
		}
	}
}

func TestRetryWithBackoff_SucceedsAfterTransientErrors(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), testRetryConfig(5), "chain_getHeader", func() error {
		calls++
		if calls < 3 {
			return &fakeNetError{msg: "i/o timeout", timeout: true}
		}
		return nil
	})

	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestRetryWithBackoff_NonRetryableFailsFast(t *testing.T) {
	expected := errors.New("invalid params")
	calls := 0
	err := retryWithBackoff(context.Background(), testRetryConfig(5), "chain_getHeader", func() error {
		calls++
		return expected
	})

	require.ErrorIs(t, err, expected)
	require.Contains(t, err.Error(), "non-retryable error")
	require.Equal(t, 1, calls)
}

func TestRetryWithBackoff_ExhaustsAttempts(t *testing.T) {
	expected := &fakeNetError{msg: "i/o timeout", timeout: true}
	calls := 0
	err := retryWithBackoff(context.Background(), testRetryConfig(3), "chain_getHeader", func() error {
		calls++
		return expected
	})

	require.ErrorIs(t, err, expected)
	require.Contains(t, err.Error(), "all 3 attempts failed")
	require.Equal(t, 3, calls)
}

func TestRetryWithBackoff_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	err := retryWithBackoff(ctx, testRetryConfig(5), "chain_getHeader", func() error {
		calls++
		if calls == 2 {
			cancel()
		}
		return &fakeNetError{msg: "i/o timeout", timeout: true}
	})

	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 2, calls)
}

func TestRetryWithBackoff_NilConfigRunsOnce(t *testing.T) {
	expected := &fakeNetError{msg: "i/o timeout", timeout: true}
	calls := 0
	err := retryWithBackoff(context.Background(), nil, "chain_getHeader", func() error {
		calls++
		return expected
	})

	require.ErrorIs(t, err, expected)
	require.Equal(t, 1, calls)
}
