// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/YuvrajShekhar/docmanager-client/internal/config"
	"github.com/sethvargo/go-retry"
)

// RetryPolicy describes how idempotent requests are retried.
//
// The delay before retry n (0-based) is min(BaseDelay·2ⁿ, MaxDelay), then
// shifted by up to ±JitterFraction of itself. MaxRetries counts retries, so
// a call is attempted at most MaxRetries+1 times.
type RetryPolicy struct {
	MaxRetries     int
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	JitterFraction float64
	// Retryable decides whether a failed attempt is tried again. Nil means
	// [IsRetryable].
	Retryable func(error) bool
	// OnRetry, when set, is called before waiting for the next attempt.
	OnRetry func(attempt int, err error)
}

// DefaultRetryPolicy returns 3 retries, 1s base, 10s ceiling and 25% jitter.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:     config.DefaultMaxRetries,
		BaseDelay:      config.DefaultRetryBaseDelay,
		MaxDelay:       config.DefaultRetryMaxDelay,
		JitterFraction: config.DefaultRetryJitter,
	}
}

// NewRetryPolicy builds a policy from the client configuration.
func NewRetryPolicy(cfg config.ClientRetry) RetryPolicy {
	return RetryPolicy{
		MaxRetries:     cfg.MaxRetries,
		BaseDelay:      cfg.BaseDelay,
		MaxDelay:       cfg.MaxDelay,
		JitterFraction: cfg.Jitter,
	}
}

// NoRetry is a policy that performs exactly one attempt.
func NoRetry() RetryPolicy {
	return RetryPolicy{MaxRetries: 0, BaseDelay: time.Millisecond}
}

// Backoff composes the go-retry backoff for the policy.
func (p RetryPolicy) Backoff() retry.Backoff {
	base := p.BaseDelay
	if base <= 0 {
		base = config.DefaultRetryBaseDelay
	}

	b := retry.NewExponential(base)
	if p.MaxDelay > 0 {
		b = retry.WithCappedDuration(p.MaxDelay, b)
	}
	if p.JitterFraction > 0 {
		b = retry.WithJitterPercent(uint64(math.Round(p.JitterFraction*100)), b)
	}
	return retry.WithMaxRetries(uint64(max(p.MaxRetries, 0)), b)
}

// Do runs fn until it succeeds, returns a non-retryable error, the retry
// budget is exhausted or ctx is done. The last error of fn is returned
// unwrapped.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	retryable := p.Retryable
	if retryable == nil {
		retryable = IsRetryable
	}

	attempt := 0
	return retry.Do(ctx, p.Backoff(), func(ctx context.Context) error {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil || !retryable(err) {
			return err
		}

		attempt++
		if p.OnRetry != nil && attempt <= p.MaxRetries {
			p.OnRetry(attempt, err)
		}
		return retry.RetryableError(err)
	})
}

// IsRetryable reports whether err is worth another attempt: 5xx and 429
// responses, network failures and client-side timeouts. Caller cancellation
// and other 4xx responses are final.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, ErrNetwork) || errors.Is(err, ErrTimeout) {
		return true
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= http.StatusInternalServerError ||
			statusErr.StatusCode == http.StatusTooManyRequests
	}
	return false
}
