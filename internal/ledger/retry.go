package ledger

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"net"
	"strings"
	"syscall"
	"time"

	"github.com/goran-ethernal/CertIndexor/pkg/config"
)

var transientMarkers = []string{
	// timeouts
	"timeout",
	"deadline exceeded",
	// rate limiting
	"429",
	"too many requests",
	"rate limit",
	// gateway and upstream failures
	"502",
	"503",
	"504",
	"bad gateway",
	"service unavailable",
	// websocket transport
	"connection reset",
	"use of closed network connection",
	"websocket: close",
	"eof",
}

// retryableError checks if an RPC error is transient and worth another attempt.
func retryableError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}

	return false
}

// calculateBackoff returns the wait before the given attempt, with ±25% jitter.
// The first attempt never waits.
func calculateBackoff(attempt int, cfg *config.RetryConfig) time.Duration {
	if attempt <= 1 {
		return 0
	}

	wait := float64(cfg.InitialBackoff.Duration) * math.Pow(cfg.BackoffMultiplier, float64(attempt-2))
	wait = math.Min(wait, float64(cfg.MaxBackoff.Duration))

	jitter := wait * 0.25 * (rand.Float64()*2 - 1) //nolint:gosec,mnd
	wait = math.Max(wait+jitter, 0)

	return time.Duration(wait)
}

// retryWithBackoff runs fn until it succeeds, fails permanently or runs out of attempts.
// A nil cfg runs fn exactly once.
func retryWithBackoff(ctx context.Context, cfg *config.RetryConfig, method string, fn func() error) error {
	if cfg == nil || cfg.MaxAttempts <= 1 {
		return fn()
	}

	var lastErr error
	started := time.Now()

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if wait := calculateBackoff(attempt, cfg); wait > 0 {
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return fmt.Errorf("context cancelled during backoff (attempt %d/%d): %w",
					attempt, cfg.MaxAttempts, ctx.Err())
			}
		}

		if err := ctx.Err(); err != nil {
			return fmt.Errorf("context cancelled before attempt %d: %w", attempt, err)
		}

		if attempt > 1 {
			RPCRetryInc(method)
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !retryableError(err) {
			return fmt.Errorf("non-retryable error on attempt %d/%d: %w", attempt, cfg.MaxAttempts, err)
		}
	}

	return fmt.Errorf("all %d attempts failed after %v (last error: %w)",
		cfg.MaxAttempts, time.Since(started), lastErr)
}
