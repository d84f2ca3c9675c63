package interceptors

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/glimte/httpmate-go/credentials"
	"github.com/glimte/httpmate-go/internal/reliability"
)

// Handler represents the remainder of the chain plus final dispatch
type Handler interface {
	Handle(ctx context.Context, req *http.Request) (*http.Response, error)
}

// HandlerFunc is a function adapter for Handler
type HandlerFunc func(ctx context.Context, req *http.Request) (*http.Response, error)

// Handle implements Handler
func (f HandlerFunc) Handle(ctx context.Context, req *http.Request) (*http.Response, error) {
	return f(ctx, req)
}

// Interceptor processes requests before they reach the transport
type Interceptor interface {
	// Intercept processes a request and calls the next handler in the chain
	Intercept(ctx context.Context, req *http.Request, next Handler) (*http.Response, error)

	// Name returns the interceptor name for logging and debugging
	Name() string
}

// InterceptorFunc is a function adapter for Interceptor
type InterceptorFunc struct {
	name string
	fn   func(ctx context.Context, req *http.Request, next Handler) (*http.Response, error)
}

// NewInterceptorFunc creates a new function-based interceptor
func NewInterceptorFunc(name string, fn func(ctx context.Context, req *http.Request, next Handler) (*http.Response, error)) *InterceptorFunc {
	return &InterceptorFunc{name: name, fn: fn}
}

// Intercept implements Interceptor
func (i *InterceptorFunc) Intercept(ctx context.Context, req *http.Request, next Handler) (*http.Response, error) {
	return i.fn(ctx, req, next)
}

// Name implements Interceptor
func (i *InterceptorFunc) Name() string {
	return i.name
}

// Chain manages an ordered list of interceptors
type Chain struct {
	interceptors []Interceptor
	logger       *slog.Logger
}

// NewChain creates a new interceptor chain
func NewChain(logger *slog.Logger) *Chain {
	if logger == nil {
		logger = slog.Default()
	}

	return &Chain{
		interceptors: make([]Interceptor, 0),
		logger:       logger,
	}
}

// Add adds an interceptor to the chain
func (c *Chain) Add(interceptor Interceptor) *Chain {
	c.interceptors = append(c.interceptors, interceptor)
	return c
}

// Execute runs the request through the chain, ending at finalHandler
func (c *Chain) Execute(ctx context.Context, req *http.Request, finalHandler Handler) (*http.Response, error) {
	if len(c.interceptors) == 0 {
		return finalHandler.Handle(ctx, req)
	}

	// Build the chain in reverse order
	handler := finalHandler
	for i := len(c.interceptors) - 1; i >= 0; i-- {
		interceptor := c.interceptors[i]
		currentHandler := handler
		handler = HandlerFunc(func(ctx context.Context, req *http.Request) (*http.Response, error) {
			return interceptor.Intercept(ctx, req, currentHandler)
		})
	}

	return handler.Handle(ctx, req)
}

// Built-in interceptors

// LoggingInterceptor logs request processing
type LoggingInterceptor struct {
	logger *slog.Logger
}

// NewLoggingInterceptor creates a new logging interceptor
func NewLoggingInterceptor(logger *slog.Logger) *LoggingInterceptor {
	if logger == nil {
		logger = slog.Default()
	}

	return &LoggingInterceptor{logger: logger}
}

// Intercept implements Interceptor
func (i *LoggingInterceptor) Intercept(ctx context.Context, req *http.Request, next Handler) (*http.Response, error) {
	start := time.Now()

	i.logger.Info("sending request",
		"method", req.Method,
		"url", req.URL.String(),
	)

	resp, err := next.Handle(ctx, req)
	duration := time.Since(start)

	if err != nil {
		i.logger.Error("request failed",
			"method", req.Method,
			"url", req.URL.String(),
			"duration", duration,
			"error", err,
		)
	} else {
		i.logger.Info("request completed",
			"method", req.Method,
			"url", req.URL.String(),
			"status", resp.StatusCode,
			"duration", duration,
		)
	}

	return resp, err
}

// Name implements Interceptor
func (i *LoggingInterceptor) Name() string {
	return "LoggingInterceptor"
}

// HeaderInterceptor applies default headers to requests. Headers already
// present on a request are left alone.
type HeaderInterceptor struct {
	headers http.Header
}

// NewHeaderInterceptor creates a new header interceptor
func NewHeaderInterceptor(headers http.Header) *HeaderInterceptor {
	return &HeaderInterceptor{headers: headers}
}

// Intercept implements Interceptor
func (i *HeaderInterceptor) Intercept(ctx context.Context, req *http.Request, next Handler) (*http.Response, error) {
	for name, values := range i.headers {
		if req.Header.Get(name) != "" {
			continue
		}
		for _, value := range values {
			req.Header.Add(name, value)
		}
	}

	return next.Handle(ctx, req)
}

// Name implements Interceptor
func (i *HeaderInterceptor) Name() string {
	return "HeaderInterceptor"
}

// TimeoutInterceptor bounds each request with a deadline
type TimeoutInterceptor struct {
	timeout time.Duration
}

// NewTimeoutInterceptor creates a new timeout interceptor
func NewTimeoutInterceptor(timeout time.Duration) *TimeoutInterceptor {
	return &TimeoutInterceptor{timeout: timeout}
}

// Intercept implements Interceptor
func (i *TimeoutInterceptor) Intercept(ctx context.Context, req *http.Request, next Handler) (*http.Response, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	return next.Handle(timeoutCtx, req)
}

// Name implements Interceptor
func (i *TimeoutInterceptor) Name() string {
	return "TimeoutInterceptor"
}

// Default interceptor chain builder

// ChainBuilder builds a common interceptor chain
type ChainBuilder struct {
	chain  *Chain
	logger *slog.Logger
}

// NewChainBuilder creates a new builder
func NewChainBuilder(logger *slog.Logger) *ChainBuilder {
	if logger == nil {
		logger = slog.Default()
	}

	return &ChainBuilder{
		chain:  NewChain(logger),
		logger: logger,
	}
}

// WithLogging adds a logging interceptor
func (b *ChainBuilder) WithLogging() *ChainBuilder {
	b.chain.Add(NewLoggingInterceptor(b.logger))
	return b
}

// WithRequestID adds a request ID interceptor
func (b *ChainBuilder) WithRequestID() *ChainBuilder {
	b.chain.Add(NewRequestIDInterceptor())
	return b
}

// WithHeaders adds a header interceptor for the given defaults
func (b *ChainBuilder) WithHeaders(headers http.Header) *ChainBuilder {
	b.chain.Add(NewHeaderInterceptor(headers))
	return b
}

// WithRateLimit adds a rate limiting interceptor
func (b *ChainBuilder) WithRateLimit(requestsPerSecond float64, burst int) *ChainBuilder {
	b.chain.Add(NewRateLimitInterceptor(requestsPerSecond, burst))
	return b
}

// WithRetry adds a retry interceptor
func (b *ChainBuilder) WithRetry(policy reliability.RetryPolicy) *ChainBuilder {
	b.chain.Add(NewRetryInterceptor(policy).WithLogger(b.logger))
	return b
}

// WithCircuitBreaker adds a circuit breaker interceptor
func (b *ChainBuilder) WithCircuitBreaker(options ...reliability.CircuitBreakerOption) *ChainBuilder {
	b.chain.Add(NewCircuitBreakerInterceptor(options...))
	return b
}

// WithTimeout adds a timeout interceptor
func (b *ChainBuilder) WithTimeout(timeout time.Duration) *ChainBuilder {
	b.chain.Add(NewTimeoutInterceptor(timeout))
	return b
}

// WithAuthorization adds an authorization interceptor backed by source
func (b *ChainBuilder) WithAuthorization(source credentials.TokenSource) *ChainBuilder {
	b.chain.Add(NewAuthorizationInterceptor(source))
	return b
}

// WithCustom adds a custom interceptor
func (b *ChainBuilder) WithCustom(interceptor Interceptor) *ChainBuilder {
	b.chain.Add(interceptor)
	return b
}

// Build returns the built interceptor chain
func (b *ChainBuilder) Build() *Chain {
	return b.chain
}
