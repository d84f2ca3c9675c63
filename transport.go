package httpmate

import (
	"context"
	"net/http"

	"github.com/glimte/httpmate-go/interceptors"
)

// Transport adapts an interceptor chain into an http.RoundTripper, so the
// chain can sit inside a plain *http.Client and serve code that never sees
// this library.
type Transport struct {
	base  http.RoundTripper
	chain *interceptors.Chain
}

// NewTransport creates a transport running chain before dispatching through
// base. A nil base falls back to http.DefaultTransport; a nil chain to an
// empty one.
func NewTransport(base http.RoundTripper, chain *interceptors.Chain) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	if chain == nil {
		chain = interceptors.NewChain(nil)
	}
	return &Transport{base: base, chain: chain}
}

// RoundTrip implements http.RoundTripper. The RoundTripper contract forbids
// mutating the caller's request, so the chain operates on a clone.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())

	return t.chain.Execute(req.Context(), clone, interceptors.HandlerFunc(
		func(ctx context.Context, req *http.Request) (*http.Response, error) {
			return t.base.RoundTrip(req.WithContext(ctx))
		},
	))
}
