package interceptors

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimitInterceptor throttles request dispatch with a token bucket.
// Requests wait for a slot rather than failing, so a burst of traffic is
// smoothed instead of rejected; cancelling the context ends the wait.
type RateLimitInterceptor struct {
	limiter *rate.Limiter
}

// NewRateLimitInterceptor creates a rate limiting interceptor allowing
// requestsPerSecond sustained throughput with the given burst size
func NewRateLimitInterceptor(requestsPerSecond float64, burst int) *RateLimitInterceptor {
	return &RateLimitInterceptor{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Intercept implements Interceptor
func (i *RateLimitInterceptor) Intercept(ctx context.Context, req *http.Request, next Handler) (*http.Response, error) {
	if err := i.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	return next.Handle(ctx, req)
}

// Name implements Interceptor
func (i *RateLimitInterceptor) Name() string {
	return "RateLimitInterceptor"
}
