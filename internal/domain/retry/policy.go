// Package retry implements the bounded-backoff policy applied to upstream
// calls that can fail transiently.
package retry

import (
	"context"
	"math"
	"math/rand"
	"time"

	"decksnap/slides-api/internal/domain/status"
)

// Policy bounds how often and how patiently a failed call is reattempted.
type Policy struct {
	MaxRetries      int
	InitialDelay    time.Duration
	MaxDelay        time.Duration
	BackoffStrategy BackoffType
	JitterFactor    float64 // 0.0-1.0
}

// BackoffType identifies the delay progression between attempts.
type BackoffType string

const (
	BackoffFixed       BackoffType = "fixed"       // Same delay each attempt
	BackoffExponential BackoffType = "exponential" // Delay doubles each attempt
)

// Delay returns the wait before the given attempt (1-based). Jitter spreads
// concurrent retries apart.
func (p Policy) Delay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	var delay time.Duration
	switch p.BackoffStrategy {
	case BackoffFixed:
		delay = p.InitialDelay
	case BackoffExponential:
		delay = p.InitialDelay * time.Duration(math.Pow(2, float64(attempt-1)))
	default:
		delay = p.InitialDelay
	}

	if delay > p.MaxDelay {
		delay = p.MaxDelay
	}

	if p.JitterFactor > 0 {
		jitter := float64(delay) * p.JitterFactor * (rand.Float64()*2 - 1)
		delay = time.Duration(float64(delay) + jitter)
		if delay < 0 {
			delay = 0
		}
	}

	return delay
}

// ShouldRetry reports whether another attempt is allowed after the given
// 0-based attempt failed with the given severity.
func (p Policy) ShouldRetry(attempt int, severity status.ErrorSeverity) bool {
	if attempt >= p.MaxRetries {
		return false
	}
	return severity.IsRetryable()
}

// Classifier maps a call failure to the severity that decides whether the
// call is retried.
type Classifier func(error) status.ErrorSeverity

// ExecuteWithResult runs fn until it succeeds, the policy is exhausted, or
// the failure is classified non-retryable. A nil classifier treats every
// failure as retryable.
func ExecuteWithResult[T any](ctx context.Context, policy Policy, classify Classifier, fn func(ctx context.Context, attempt int) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; ; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		result, err := fn(ctx, attempt)
		if err == nil {
			return result, nil
		}
		lastErr = err

		severity := status.ErrorSeverityRetryable
		if classify != nil {
			severity = classify(err)
		}
		if !policy.ShouldRetry(attempt, severity) {
			break
		}

		if delay := policy.Delay(attempt + 1); delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return zero, ctx.Err()
			case <-timer.C:
			}
		}
	}

	return zero, lastErr
}
