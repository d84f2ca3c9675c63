// Package reliability provides retry and circuit breaker support for the
// HTTP interceptor chain.
//
// This package implements:
//   - Retry Policies: configurable strategies (exponential backoff, linear, fixed)
//     that classify both transport errors and response status codes
//   - Circuit Breaker: trips after repeated upstream failures so a struggling
//     server gets room to recover
//
// Key features:
//   - Thread-safe implementations suitable for concurrent use
//   - Configurable thresholds, delays, and jitter
//   - Support for custom error classification (retryable vs non-retryable)
//     via the IsRetryable() bool error method
//
// Example usage:
//
//	// Retry a request with exponential backoff
//	policy := NewExponentialBackoff(100*time.Millisecond, 10*time.Second, 2.0, 5)
//
//	resp, err := Retry(ctx, policy, func() (*http.Response, error) {
//	    return client.Do(req)
//	})
package reliability
