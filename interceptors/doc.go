// Package interceptors provides a flexible interceptor system for outgoing
// HTTP requests.
//
// The interceptor pattern allows you to add cross-cutting concerns to request
// processing without modifying the code issuing the requests. This package
// provides:
//   - Interceptor interface and chain management
//   - Built-in interceptors for common concerns
//   - Builder pattern for easy chain construction
//
// Built-in interceptors:
//   - AuthorizationInterceptor: fetches a credential from a token source and
//     sets the Authorization header on every request
//   - LoggingInterceptor: logs request processing with timing information
//   - RequestIDInterceptor: stamps requests with a unique X-Request-Id
//   - HeaderInterceptor: applies default headers to requests
//   - RateLimitInterceptor: throttles request dispatch
//   - RetryInterceptor: re-issues failed requests per a retry policy
//   - CircuitBreakerInterceptor: stops dispatch to a failing upstream
//   - TimeoutInterceptor: bounds each request with a deadline
//   - ScopeInterceptor: applies another interceptor only to matching requests
//
// Example usage:
//
//	chain := interceptors.NewChainBuilder(logger).
//		WithLogging().
//		WithRequestID().
//		WithRetry(reliability.NewExponentialBackoff(100*time.Millisecond, 10*time.Second, 2.0, 3)).
//		WithAuthorization(source).
//		Build()
//
//	resp, err := chain.Execute(ctx, req, finalHandler)
//
// Ordering matters: interceptors run in the order they are added, with the
// final handler called last. Place AuthorizationInterceptor after (inside)
// RetryInterceptor so each retry attempt picks up a freshly fetched
// credential rather than re-sending a token that may have expired mid-retry.
//
// Custom interceptors can be created by implementing the Interceptor interface:
//
//	type CustomInterceptor struct {}
//
//	func (i *CustomInterceptor) Intercept(ctx context.Context, req *http.Request, next Handler) (*http.Response, error) {
//		// Pre-processing logic
//		resp, err := next.Handle(ctx, req)
//		// Post-processing logic
//		return resp, err
//	}
//
//	func (i *CustomInterceptor) Name() string {
//		return "CustomInterceptor"
//	}
package interceptors
