package interceptors

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/glimte/httpmate-go/internal/reliability"
)

// RetryInterceptor re-issues failed requests according to a retry policy.
// Transport errors and retryable status codes (429, most 5xx) are retried;
// everything else passes through on the first attempt.
//
// Requests with a body are only retried when GetBody is set, since a
// consumed body cannot be replayed otherwise. http.NewRequest sets GetBody
// for the common body types.
type RetryInterceptor struct {
	retryPolicy reliability.RetryPolicy
	logger      *slog.Logger
}

// NewRetryInterceptor creates a new retry interceptor
func NewRetryInterceptor(retryPolicy reliability.RetryPolicy) *RetryInterceptor {
	return &RetryInterceptor{
		retryPolicy: retryPolicy,
		logger:      slog.Default(),
	}
}

// WithLogger sets the logger for the retry interceptor
func (r *RetryInterceptor) WithLogger(logger *slog.Logger) *RetryInterceptor {
	r.logger = logger
	return r
}

// Intercept implements the Interceptor interface
func (r *RetryInterceptor) Intercept(ctx context.Context, req *http.Request, next Handler) (*http.Response, error) {
	if req.Body != nil && req.GetBody == nil {
		// No way to replay the body, run the single attempt
		return next.Handle(ctx, req)
	}

	attempt := 0
	return reliability.Retry(ctx, r.retryPolicy, func() (*http.Response, error) {
		if attempt > 0 {
			r.logger.Debug("retrying request",
				"method", req.Method,
				"url", req.URL.String(),
				"attempt", attempt,
			)
			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return nil, fmt.Errorf("failed to rewind request body: %w", err)
				}
				req.Body = body
			}
		}
		attempt++

		return next.Handle(ctx, req)
	})
}

// Name returns the interceptor name
func (r *RetryInterceptor) Name() string {
	return "RetryInterceptor"
}

// CircuitBreakerInterceptor stops dispatch to an upstream that keeps
// failing, letting it recover before traffic resumes
type CircuitBreakerInterceptor struct {
	breaker *reliability.CircuitBreaker
}

// NewCircuitBreakerInterceptor creates a circuit breaker interceptor
func NewCircuitBreakerInterceptor(options ...reliability.CircuitBreakerOption) *CircuitBreakerInterceptor {
	return &CircuitBreakerInterceptor{
		breaker: reliability.NewCircuitBreaker(options...),
	}
}

// Intercept implements Interceptor
func (i *CircuitBreakerInterceptor) Intercept(ctx context.Context, req *http.Request, next Handler) (*http.Response, error) {
	return i.breaker.Execute(ctx, func() (*http.Response, error) {
		return next.Handle(ctx, req)
	})
}

// State returns the current breaker state for observability
func (i *CircuitBreakerInterceptor) State() reliability.State {
	return i.breaker.GetState()
}

// Name implements Interceptor
func (i *CircuitBreakerInterceptor) Name() string {
	return "CircuitBreakerInterceptor"
}
