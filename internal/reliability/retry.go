package reliability

import (
	"context"
	"io"
	"math"
	"math/rand"
	"net/http"
	"time"
)

// RetryPolicy defines the interface for retry policies
type RetryPolicy interface {
	// ShouldRetry determines if a retry should be attempted given the
	// outcome of the last attempt. resp may be nil when err is set.
	ShouldRetry(attempt int, resp *http.Response, err error) (bool, time.Duration)
	// MaxRetries returns the maximum number of retries
	MaxRetries() int
	// NextDelay calculates the next retry delay
	NextDelay(attempt int) time.Duration
}

// retryDecision classifies an attempt outcome
func retryDecision(resp *http.Response, err error) bool {
	if err != nil {
		return IsRetryableError(err)
	}
	if resp != nil {
		return IsRetryableStatus(resp.StatusCode)
	}
	return false
}

// ExponentialBackoff implements exponential backoff retry policy
type ExponentialBackoff struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
	MaxAttempts     int
	Jitter          bool
}

// NewExponentialBackoff creates a new exponential backoff policy
func NewExponentialBackoff(initial, max time.Duration, multiplier float64, maxRetries int) *ExponentialBackoff {
	return &ExponentialBackoff{
		InitialInterval: initial,
		MaxInterval:     max,
		Multiplier:      multiplier,
		MaxAttempts:     maxRetries,
		Jitter:          true,
	}
}

// ShouldRetry implements RetryPolicy
func (e *ExponentialBackoff) ShouldRetry(attempt int, resp *http.Response, err error) (bool, time.Duration) {
	if attempt >= e.MaxAttempts {
		return false, 0
	}

	if !retryDecision(resp, err) {
		return false, 0
	}

	return true, e.NextDelay(attempt)
}

// MaxRetries implements RetryPolicy
func (e *ExponentialBackoff) MaxRetries() int {
	return e.MaxAttempts
}

// NextDelay implements RetryPolicy
func (e *ExponentialBackoff) NextDelay(attempt int) time.Duration {
	delay := float64(e.InitialInterval) * math.Pow(e.Multiplier, float64(attempt))

	// Cap at max interval
	if delay > float64(e.MaxInterval) {
		delay = float64(e.MaxInterval)
	}

	// Add jitter if enabled
	if e.Jitter {
		jitter := rand.Float64() * 0.3 * delay // ±15% jitter
		delay = delay + jitter - (0.15 * delay)
	}

	return time.Duration(delay)
}

// LinearBackoff implements linear backoff retry policy
type LinearBackoff struct {
	Interval    time.Duration
	MaxAttempts int
	Jitter      bool
}

// NewLinearBackoff creates a new linear backoff policy
func NewLinearBackoff(interval time.Duration, maxRetries int) *LinearBackoff {
	return &LinearBackoff{
		Interval:    interval,
		MaxAttempts: maxRetries,
		Jitter:      true,
	}
}

// ShouldRetry implements RetryPolicy
func (l *LinearBackoff) ShouldRetry(attempt int, resp *http.Response, err error) (bool, time.Duration) {
	if attempt >= l.MaxAttempts {
		return false, 0
	}

	if !retryDecision(resp, err) {
		return false, 0
	}

	return true, l.NextDelay(attempt)
}

// MaxRetries implements RetryPolicy
func (l *LinearBackoff) MaxRetries() int {
	return l.MaxAttempts
}

// NextDelay implements RetryPolicy
func (l *LinearBackoff) NextDelay(attempt int) time.Duration {
	delay := l.Interval * time.Duration(attempt+1)

	if l.Jitter {
		jitter := time.Duration(rand.Float64() * float64(delay) * 0.3)
		delay = delay + jitter - (delay * 15 / 100)
	}

	return delay
}

// FixedDelay implements a fixed delay retry policy
type FixedDelay struct {
	Delay       time.Duration
	MaxAttempts int
}

// NewFixedDelay creates a new fixed delay policy
func NewFixedDelay(delay time.Duration, maxRetries int) *FixedDelay {
	return &FixedDelay{
		Delay:       delay,
		MaxAttempts: maxRetries,
	}
}

// ShouldRetry implements RetryPolicy
func (f *FixedDelay) ShouldRetry(attempt int, resp *http.Response, err error) (bool, time.Duration) {
	if attempt >= f.MaxAttempts {
		return false, 0
	}

	if !retryDecision(resp, err) {
		return false, 0
	}

	return true, f.Delay
}

// MaxRetries implements RetryPolicy
func (f *FixedDelay) MaxRetries() int {
	return f.MaxAttempts
}

// NextDelay implements RetryPolicy
func (f *FixedDelay) NextDelay(attempt int) time.Duration {
	return f.Delay
}

// Retry executes an HTTP attempt with retry logic. Responses abandoned in
// favor of a retry are drained and closed so their connections can be
// reused. The final attempt's response and error are returned as-is, except
// that a transport error surviving the whole retry budget is wrapped in a
// RetryError carrying ErrMaxRetriesExceeded and the attempt history.
func Retry(ctx context.Context, policy RetryPolicy, fn func() (*http.Response, error)) (*http.Response, error) {
	start := time.Now()

	for attempt := 0; ; attempt++ {
		// Check context
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		resp, err := fn()

		shouldRetry, delay := policy.ShouldRetry(attempt, resp, err)
		if !shouldRetry {
			if err != nil && attempt >= policy.MaxRetries() {
				return nil, &RetryError{
					Attempts:    attempt + 1,
					MaxAttempts: policy.MaxRetries(),
					LastError:   err,
					Duration:    time.Since(start),
				}
			}
			return resp, err
		}

		discardResponse(resp)

		// Wait before retry
		select {
		case <-time.After(delay):
			// Continue with retry
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// RetryWithBackoff is a convenience function for exponential backoff retry
func RetryWithBackoff(ctx context.Context, fn func() (*http.Response, error)) (*http.Response, error) {
	policy := NewExponentialBackoff(
		100*time.Millisecond,
		10*time.Second,
		2.0,
		5,
	)
	return Retry(ctx, policy, fn)
}

func discardResponse(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
