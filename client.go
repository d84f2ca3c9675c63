package httpmate

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/glimte/httpmate-go/credentials"
	"github.com/glimte/httpmate-go/interceptors"
)

// Client issues HTTP requests through an interceptor chain before handing
// them to an underlying http.Client for dispatch.
type Client struct {
	httpClient *http.Client
	chain      *interceptors.Chain
	logger     *slog.Logger
}

// NewClient creates a new client with options
func NewClient(options ...ClientOption) *Client {
	cfg := &clientConfig{
		httpClient: http.DefaultClient,
		logger:     slog.Default(),
	}

	for _, opt := range options {
		opt(cfg)
	}

	chain := interceptors.NewChain(cfg.logger)
	for _, interceptor := range cfg.interceptors {
		chain.Add(interceptor)
	}

	return &Client{
		httpClient: cfg.httpClient,
		chain:      chain,
		logger:     cfg.logger,
	}
}

// Do sends the request through the interceptor chain and the underlying
// http.Client. The request's context carries through the chain, so
// interceptor-imposed deadlines apply to the dispatch as well.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.chain.Execute(req.Context(), req, interceptors.HandlerFunc(c.dispatch))
}

func (c *Client) dispatch(ctx context.Context, req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req.WithContext(ctx))
}

// Get issues a GET request to url through the chain
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}

// Post issues a POST request to url through the chain
func (c *Client) Post(ctx context.Context, url, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	return c.Do(req)
}

// Chain returns the client's interceptor chain
func (c *Client) Chain() *interceptors.Chain {
	return c.chain
}

// clientConfig holds client configuration
type clientConfig struct {
	httpClient   *http.Client
	logger       *slog.Logger
	interceptors []interceptors.Interceptor
}

// ClientOption configures the client
type ClientOption func(*clientConfig)

// WithHTTPClient sets the underlying http.Client used for dispatch
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(cfg *clientConfig) {
		if httpClient != nil {
			cfg.httpClient = httpClient
		}
	}
}

// WithLogger sets the logger for all components
func WithLogger(logger *slog.Logger) ClientOption {
	return func(cfg *clientConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithInterceptors appends interceptors to the chain in order
func WithInterceptors(ics ...interceptors.Interceptor) ClientOption {
	return func(cfg *clientConfig) {
		cfg.interceptors = append(cfg.interceptors, ics...)
	}
}

// WithTimeout appends a timeout interceptor bounding each request, including
// any retries appended after it, with a deadline
func WithTimeout(timeout time.Duration) ClientOption {
	return func(cfg *clientConfig) {
		cfg.interceptors = append(cfg.interceptors, interceptors.NewTimeoutInterceptor(timeout))
	}
}

// WithAuthorization appends an authorization interceptor backed by source.
// Add it last so requests retried by an earlier interceptor fetch the
// current token.
func WithAuthorization(source credentials.TokenSource) ClientOption {
	return func(cfg *clientConfig) {
		cfg.interceptors = append(cfg.interceptors, interceptors.NewAuthorizationInterceptor(source))
	}
}
