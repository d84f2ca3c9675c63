package interceptors

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// DefaultRequestIDHeader is the header stamped by RequestIDInterceptor
const DefaultRequestIDHeader = "X-Request-Id"

// RequestIDInterceptor stamps each request with a unique ID so client and
// server logs can be correlated. A request that already carries an ID keeps
// it.
type RequestIDInterceptor struct {
	header string
}

// NewRequestIDInterceptor creates a new request ID interceptor
func NewRequestIDInterceptor() *RequestIDInterceptor {
	return &RequestIDInterceptor{header: DefaultRequestIDHeader}
}

// WithHeader sets the header name used for the request ID
func (i *RequestIDInterceptor) WithHeader(name string) *RequestIDInterceptor {
	i.header = name
	return i
}

// Intercept implements Interceptor
func (i *RequestIDInterceptor) Intercept(ctx context.Context, req *http.Request, next Handler) (*http.Response, error) {
	if req.Header.Get(i.header) == "" {
		req.Header.Set(i.header, uuid.NewString())
	}

	return next.Handle(ctx, req)
}

// Name implements Interceptor
func (i *RequestIDInterceptor) Name() string {
	return "RequestIDInterceptor"
}
