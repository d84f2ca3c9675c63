package reliability

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// Circuit breaker errors
	ErrCircuitOpen          = errors.New("circuit breaker: circuit is open")
	ErrCircuitHalfOpenLimit = errors.New("circuit breaker: half-open request limit reached")
	ErrUnknownState         = errors.New("circuit breaker: unknown state")

	// Retry errors
	ErrMaxRetriesExceeded = errors.New("retry: maximum attempts exceeded")
	ErrNonRetryable       = errors.New("retry: error is not retryable")
)

// CircuitBreakerError represents a circuit breaker rejection with context
type CircuitBreakerError struct {
	State            State
	Op               string
	Failures         int
	FailureThreshold int
	LastFailure      time.Time
	NextRetry        time.Time
}

func (e *CircuitBreakerError) Error() string {
	switch e.State {
	case StateOpen:
		retryIn := time.Until(e.NextRetry).Round(time.Second)
		return fmt.Sprintf("circuit breaker open: %s blocked (failures=%d/%d, retry in %v)",
			e.Op, e.Failures, e.FailureThreshold, retryIn)
	case StateHalfOpen:
		return fmt.Sprintf("circuit breaker half-open: %s limited", e.Op)
	default:
		return fmt.Sprintf("circuit breaker error: %s in state %v", e.Op, e.State)
	}
}

// Unwrap maps the rejection onto its sentinel so callers can branch with
// errors.Is without inspecting State
func (e *CircuitBreakerError) Unwrap() error {
	switch e.State {
	case StateOpen:
		return ErrCircuitOpen
	case StateHalfOpen:
		return ErrCircuitHalfOpenLimit
	default:
		return ErrUnknownState
	}
}

// RetryError represents a request that failed across all retry attempts
type RetryError struct {
	Attempts    int
	MaxAttempts int
	LastError   error
	Duration    time.Duration
}

func (e *RetryError) Error() string {
	return fmt.Sprintf("retry failed after %d/%d attempts over %v: %v",
		e.Attempts, e.MaxAttempts, e.Duration.Round(time.Millisecond), e.LastError)
}

// Unwrap exposes both the exhaustion sentinel and the final attempt's error
func (e *RetryError) Unwrap() []error {
	return []error{ErrMaxRetriesExceeded, e.LastError}
}

// IsRetryableError checks if a transport error should be retried
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Cancellation ends the attempt, not just this try
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	if errors.Is(err, ErrNonRetryable) || errors.Is(err, ErrMaxRetriesExceeded) {
		return false
	}

	// Errors can opt out of retries explicitly
	type retryable interface {
		IsRetryable() bool
	}
	var r retryable
	if errors.As(err, &r) {
		return r.IsRetryable()
	}

	// Circuit breaker rejections are retryable once the open window passes
	var cbErr *CircuitBreakerError
	if errors.As(err, &cbErr) {
		return cbErr.State != StateOpen || time.Now().After(cbErr.NextRetry)
	}

	// Unclassified transport errors are assumed transient
	return true
}

// IsRetryableStatus checks if a response status code warrants a retry
func IsRetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
