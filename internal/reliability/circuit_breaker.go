package reliability

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// State represents the circuit breaker state
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreaker implements the circuit breaker pattern for HTTP requests.
// A failure is either a transport error or a server error response (5xx).
type CircuitBreaker struct {
	mu              sync.RWMutex
	state           State
	failures        int
	successes       int
	lastFailureTime time.Time
	totalRequests   int64
	totalFailures   int64
	totalSuccesses  int64

	// Configuration
	failureThreshold int
	successThreshold int
	timeout          time.Duration
	halfOpenRequests int
	currentHalfOpen  int
	name             string
}

// CircuitBreakerOption configures the circuit breaker
type CircuitBreakerOption func(*CircuitBreaker)

// WithFailureThreshold sets the failure threshold
func WithFailureThreshold(threshold int) CircuitBreakerOption {
	return func(cb *CircuitBreaker) {
		cb.failureThreshold = threshold
	}
}

// WithSuccessThreshold sets the success threshold for half-open state
func WithSuccessThreshold(threshold int) CircuitBreakerOption {
	return func(cb *CircuitBreaker) {
		cb.successThreshold = threshold
	}
}

// WithOpenTimeout sets how long the circuit stays open before probing
func WithOpenTimeout(timeout time.Duration) CircuitBreakerOption {
	return func(cb *CircuitBreaker) {
		cb.timeout = timeout
	}
}

// WithHalfOpenRequests sets the max requests in half-open state
func WithHalfOpenRequests(requests int) CircuitBreakerOption {
	return func(cb *CircuitBreaker) {
		cb.halfOpenRequests = requests
	}
}

// WithBreakerName sets the circuit breaker name for identification
func WithBreakerName(name string) CircuitBreakerOption {
	return func(cb *CircuitBreaker) {
		cb.name = name
	}
}

// NewCircuitBreaker creates a new circuit breaker
func NewCircuitBreaker(options ...CircuitBreakerOption) *CircuitBreaker {
	cb := &CircuitBreaker{
		state:            StateClosed,
		failureThreshold: 5,
		successThreshold: 3,
		timeout:          30 * time.Second,
		halfOpenRequests: 3,
		name:             "default",
	}

	for _, opt := range options {
		opt(cb)
	}

	return cb
}

// Execute runs an HTTP attempt with circuit breaker protection. The response
// is returned untouched; its status only feeds the failure accounting.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() (*http.Response, error)) (*http.Response, error) {
	cb.mu.Lock()
	cb.totalRequests++
	cb.mu.Unlock()

	if err := cb.canExecute(); err != nil {
		return nil, err
	}

	// Check context before execution
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	resp, err := fn()
	cb.recordResult(isFailure(resp, err))
	return resp, err
}

func isFailure(resp *http.Response, err error) bool {
	if err != nil {
		return true
	}
	return resp != nil && resp.StatusCode >= http.StatusInternalServerError
}

// GetState returns the current state
func (cb *CircuitBreaker) GetState() State {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

// Reset resets the circuit breaker to the closed state
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.state = StateClosed
	cb.failures = 0
	cb.successes = 0
	cb.currentHalfOpen = 0
}

// canExecute checks if execution is allowed
func (cb *CircuitBreaker) canExecute() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		return nil

	case StateOpen:
		nextRetry := cb.lastFailureTime.Add(cb.timeout)
		if time.Now().After(nextRetry) {
			// Transition to half-open, this request takes the first probe slot
			cb.state = StateHalfOpen
			cb.currentHalfOpen = 1
			cb.successes = 0
			return nil
		}
		return &CircuitBreakerError{
			State:            cb.state,
			Op:               cb.name,
			Failures:         cb.failures,
			FailureThreshold: cb.failureThreshold,
			LastFailure:      cb.lastFailureTime,
			NextRetry:        nextRetry,
		}

	case StateHalfOpen:
		if cb.currentHalfOpen >= cb.halfOpenRequests {
			return &CircuitBreakerError{
				State:            cb.state,
				Op:               cb.name,
				Failures:         cb.failures,
				FailureThreshold: cb.failureThreshold,
				LastFailure:      cb.lastFailureTime,
				NextRetry:        time.Now().Add(time.Second), // Retry soon
			}
		}
		cb.currentHalfOpen++
		return nil

	default:
		return ErrUnknownState
	}
}

// recordResult records the outcome of an execution
func (cb *CircuitBreaker) recordResult(failed bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if failed {
		cb.failures++
		cb.totalFailures++
		cb.lastFailureTime = time.Now()

		switch cb.state {
		case StateClosed:
			if cb.failures >= cb.failureThreshold {
				cb.state = StateOpen
			}

		case StateHalfOpen:
			// Single failure in half-open moves back to open
			cb.state = StateOpen
			cb.currentHalfOpen = 0
		}

		if cb.state != StateClosed {
			cb.successes = 0
		}

	} else {
		cb.successes++
		cb.totalSuccesses++

		switch cb.state {
		case StateHalfOpen:
			if cb.successes >= cb.successThreshold {
				// Recovered, close the circuit
				cb.state = StateClosed
				cb.failures = 0
				cb.currentHalfOpen = 0
			} else if cb.currentHalfOpen > 0 {
				// Probe finished, free its slot for the next one
				cb.currentHalfOpen--
			}

		case StateClosed:
			// Reset failure counter on success in closed state
			if cb.failures > 0 {
				cb.failures = 0
			}
		}
	}
}

// GetMetrics returns circuit breaker metrics
func (cb *CircuitBreaker) GetMetrics() CircuitBreakerMetrics {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	return CircuitBreakerMetrics{
		Name:            cb.name,
		State:           cb.state,
		TotalRequests:   cb.totalRequests,
		TotalFailures:   cb.totalFailures,
		TotalSuccesses:  cb.totalSuccesses,
		CurrentFailures: cb.failures,
		LastFailureTime: cb.lastFailureTime,
	}
}

// CircuitBreakerMetrics represents a snapshot of circuit breaker counters
type CircuitBreakerMetrics struct {
	Name            string
	State           State
	TotalRequests   int64
	TotalFailures   int64
	TotalSuccesses  int64
	CurrentFailures int
	LastFailureTime time.Time
}

// String implements fmt.Stringer for logging
func (m CircuitBreakerMetrics) String() string {
	return fmt.Sprintf("%s: state=%s requests=%d failures=%d", m.Name, m.State, m.TotalRequests, m.TotalFailures)
}
